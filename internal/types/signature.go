package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Signature 表示交易签名（64 字节 ed25519 签名），交易的唯一标识。
type Signature [64]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// TrySignatureFromBase58 解析命令行传入的 base58 签名字符串
func TrySignatureFromBase58(s string) (Signature, error) {
	var sig Signature
	data, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("failed to decode base58 signature %q: %w", s, err)
	}
	if len(data) != len(sig) {
		return sig, fmt.Errorf("invalid signature length: got %d, want 64, input=%q", len(data), s)
	}
	copy(sig[:], data)
	return sig, nil
}
