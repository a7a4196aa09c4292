package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/p2pmarket/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// LoadKey parses a hex private key, with or without the 0x prefix
func LoadKey(hexKey string) (*ecdsa.PrivateKey, domain.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, "", err
	}
	return key, AddressOf(&key.PublicKey), nil
}

func AddressOf(pub *ecdsa.PublicKey) domain.Address {
	return domain.Address(crypto.PubkeyToAddress(*pub).Hex())
}
