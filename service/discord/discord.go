package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain/order"
)

type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type disputeNotifier struct {
	sender    messageSender
	channelId string
}

// New posts dispute notifications to a discord channel through a bot account
func New(botKey, channelId string) (order.DisputeNotifier, error) {
	session, err := discordgo.New(fmt.Sprintf("Bot %s", botKey))
	if err != nil {
		return nil, err
	}
	return &disputeNotifier{sender: session, channelId: channelId}, nil
}

func (n *disputeNotifier) NotifyDispute(c ctx.Ctx, o *order.Order) error {
	msg := &discordgo.MessageEmbed{
		Title:       "Dispute opened",
		Description: o.DisputeReason,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Order", Value: o.Id.Hex()},
			{Name: "Listing", Value: o.Listing.Hex()},
			{Name: "Buyer", Value: o.Buyer.Hex()},
			{Name: "Seller", Value: o.Seller.Hex()},
			{Name: "Price", Value: o.Price},
			{Name: "Transaction", Value: o.TransactionHash.String()},
		},
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.channelId, msg); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"orderId": o.Id.Hex(),
		}).Error("ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

type noopNotifier struct{}

// NewNoop only logs disputes, used when no bot is configured
func NewNoop() order.DisputeNotifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyDispute(c ctx.Ctx, o *order.Order) error {
	c.WithFields(log.Fields{
		"orderId": o.Id.Hex(),
		"reason":  o.DisputeReason,
	}).Info("dispute opened")
	return nil
}
