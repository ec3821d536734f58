package utils

import (
	"math/big"

	"castsol/internal/consts"

	"github.com/shopspring/decimal"
)

// LamportsToSol 将 lamports 转换为 SOL 的十进制字符串，结果精确，不带多余的尾随零。
// 例如 1_000_000_000 → "1"，1_500_000_000 → "1.5"。
func LamportsToSol(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -consts.SolDecimals).String()
}

// FormatTokenAmount 将最小单位的整数金额（十进制字符串）按 decimals 转换为可读金额。
// 金额无法解析时原样返回，空字符串视为 0。
func FormatTokenAmount(raw string, decimals uint8) string {
	if raw == "" {
		return "0"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.Shift(-int32(decimals)).String()
}

// DigitCount 返回非负整数的十进制位数，0 视为 1 位
func DigitCount(n int) int {
	count := 1
	for n >= 10 {
		n /= 10
		count++
	}
	return count
}
