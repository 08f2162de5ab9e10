package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// SelectorSize is the length of a method selector at the head of calldata.
const SelectorSize = 4

// RequestHash is the content hash a pending request is keyed by.
func RequestHash(payload []byte) common.Hash {
	return crypto.Keccak256Hash(payload)
}

// LookupMethod returns the method of contractABI selected by payload, or nil when the
// payload is too short or its selector is unknown.
func LookupMethod(contractABI *abi.ABI, payload []byte) *abi.Method {
	if len(payload) < SelectorSize {
		return nil
	}
	method, err := contractABI.MethodById(payload[:SelectorSize])
	if err != nil {
		return nil
	}
	return method
}

// UnpackArgs decodes the arguments of payload for method into v, a pointer to a struct
// whose fields follow the ABI argument names.
func UnpackArgs(method *abi.Method, payload []byte, v interface{}) error {
	if len(payload) < SelectorSize {
		return fmt.Errorf("%w: payload shorter than a selector", domain.ErrMalformedCall)
	}
	values, err := method.Inputs.Unpack(payload[SelectorSize:])
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedCall, method.Name, err)
	}
	if len(values) == 0 {
		return nil
	}
	if err := method.Inputs.Copy(v, values); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedCall, method.Name, err)
	}
	return nil
}

// PackResult encodes the return values of a view method.
func PackResult(method *abi.Method, values ...interface{}) ([]byte, error) {
	out, err := method.Outputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("pack %s result: %w", method.Name, err)
	}
	return out, nil
}

// DescribeCall renders payload as "method(arg, ...)" using the first ABI that knows its
// selector, falling back to the raw selector.
func DescribeCall(payload []byte, abis ...*abi.ABI) string {
	for _, contractABI := range abis {
		method := LookupMethod(contractABI, payload)
		if method == nil {
			continue
		}
		values, err := method.Inputs.Unpack(payload[SelectorSize:])
		if err != nil {
			return method.Name + "(<malformed>)"
		}
		return fmt.Sprintf("%s%v", method.Name, formatValues(values))
	}
	if len(payload) < SelectorSize {
		return fmt.Sprintf("0x%x", payload)
	}
	return fmt.Sprintf("0x%x(...)", payload[:SelectorSize])
}

func formatValues(values []interface{}) string {
	out := "("
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		switch val := v.(type) {
		case [32]byte:
			out += common.Hash(val).Hex()
		case common.Address:
			out += val.Hex()
		default:
			out += fmt.Sprint(val)
		}
	}
	return out + ")"
}
