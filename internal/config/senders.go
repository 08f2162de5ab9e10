package config

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
)

// ErrUnknownSender is returned when a sender name is not declared in the config file
var ErrUnknownSender = errors.New("unknown sender")

// ResolveSender determines the account transactions are sent from. A private key takes
// precedence over from, which may be a hex address or a sender name from the config file.
// It returns the zero address when neither is given.
func ResolveSender(file *config.FileConfig, from, privateKey string) (common.Address, string, error) {
	if privateKey != "" {
		key, err := parsePrivateKey(os.ExpandEnv(privateKey))
		if err != nil {
			return common.Address{}, "", fmt.Errorf("invalid private key: %w", err)
		}
		return key.Address, "", nil
	}
	if from == "" {
		return common.Address{}, "", nil
	}
	addr, err := ResolveAccount(file, from)
	if err != nil {
		return common.Address{}, "", err
	}
	if common.IsHexAddress(from) {
		return addr, "", nil
	}
	return addr, from, nil
}

// ResolveAccount turns ref into an address. ref is either a hex address or the name of a
// sender declared in file.
func ResolveAccount(file *config.FileConfig, ref string) (common.Address, error) {
	ref = strings.TrimSpace(ref)
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	if file == nil {
		return common.Address{}, fmt.Errorf("%w %q: no config file", ErrUnknownSender, ref)
	}
	sender, ok := file.Senders[ref]
	if !ok {
		return common.Address{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownSender, ref, strings.Join(senderNames(file), ", "))
	}
	return senderAddress(ref, sender)
}

// senderAddress derives the address of a declared sender
func senderAddress(name string, sender config.SenderConfig) (common.Address, error) {
	switch {
	case sender.PrivateKey != "" && sender.Address != "":
		return common.Address{}, fmt.Errorf("sender %s: private_key and address are mutually exclusive", name)
	case sender.PrivateKey != "":
		key, err := parsePrivateKey(sender.PrivateKey)
		if err != nil {
			return common.Address{}, fmt.Errorf("sender %s: %w", name, err)
		}
		return key.Address, nil
	case sender.Address != "":
		if !common.IsHexAddress(sender.Address) {
			return common.Address{}, fmt.Errorf("sender %s: invalid address %q", name, sender.Address)
		}
		return common.HexToAddress(sender.Address), nil
	default:
		return common.Address{}, fmt.Errorf("sender %s: private_key or address is required", name)
	}
}

func senderNames(file *config.FileConfig) []string {
	names := make([]string, 0, len(file.Senders))
	for name := range file.Senders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type privateKey struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

func parsePrivateKey(privateKeyHex string) (*privateKey, error) {
	// Remove 0x prefix if present
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")

	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}

	key, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}

	publicKeyECDSA, ok := key.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to get public key")
	}

	return &privateKey{
		PrivateKey: key,
		Address:    crypto.PubkeyToAddress(*publicKeyECDSA),
	}, nil
}
