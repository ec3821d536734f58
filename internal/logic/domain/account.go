package domain

import "castsol/internal/types"

// AccountTable 表示交易引用的完整账户列表，指令中的 programIdIndex / accounts 均为该列表的下标。
// 顺序：message.accountKeys → loadedAddresses.writable → loadedAddresses.readonly。
type AccountTable []types.Pubkey

func (t AccountTable) Len() int {
	return len(t)
}

// Contains 判断下标是否落在账户表范围内
func (t AccountTable) Contains(idx int) bool {
	return idx >= 0 && idx < len(t)
}

// ContainsAll 判断所有下标是否都落在账户表范围内
func (t AccountTable) ContainsAll(indices []int) bool {
	for _, idx := range indices {
		if !t.Contains(idx) {
			return false
		}
	}
	return true
}

// Name 返回账户的 base58 字符串，调用方需先用 Contains 校验下标。
func (t AccountTable) Name(idx int) string {
	return t[idx].String()
}
