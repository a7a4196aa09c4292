package domain

type Table string

const (
	TableListings Table = "listings"
	TableUsers    Table = "users"
	TableOrders   Table = "orders"
)
