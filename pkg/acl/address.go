package acl

import (
	"encoding/hex"
	"strings"
)

const (
	// AnyEntityAddress stands for every account: a role granted to it is
	// held by any address.
	AnyEntityAddress = "0xffffffffffffffffffffffffffffffffffffffff"

	// BurnEntityAddress is used as a manager to freeze a permission for good.
	BurnEntityAddress = "0x0000000000000000000000000000000000000001"

	// EmptyAddress is the zero address, used when no entity was selected.
	EmptyAddress = "0x0000000000000000000000000000000000000000"

	addressLength   = 20
	roleBytesLength = 32
	hexPrefix       = "0x"
)

func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

func AddressesEqual(first, second string) bool {
	return strings.EqualFold(first, second)
}

func IsAnyEntity(address string) bool {
	return AddressesEqual(address, AnyEntityAddress)
}

func IsBurnEntity(address string) bool {
	return AddressesEqual(address, BurnEntityAddress)
}

// ShortenAddress keeps the first and last characters of an address,
// e.g. 0xcafe…beef.
func ShortenAddress(address string) string {
	const charsLength = 4
	if len(address) < len(hexPrefix)+2*charsLength {
		return address
	}

	return address[:len(hexPrefix)+charsLength] + "…" + address[len(address)-charsLength:]
}

func ValidateAddress(address string) error {
	if !isHexOfLength(address, addressLength) {
		return ErrInvalidAddress
	}

	return nil
}

func ValidateRoleBytes(roleBytes string) error {
	if !isHexOfLength(roleBytes, roleBytesLength) {
		return ErrInvalidRoleBytes
	}

	return nil
}

func isHexOfLength(value string, byteLength int) bool {
	if len(value) != len(hexPrefix)+2*byteLength {
		return false
	}
	if !strings.HasPrefix(value, hexPrefix) && !strings.HasPrefix(value, "0X") {
		return false
	}

	_, err := hex.DecodeString(value[len(hexPrefix):])
	return err == nil
}
