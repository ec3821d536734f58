package domain

// BalanceSnapshot 记录账户在交易执行前后的 lamport 余额，与 AccountTable 按位置对齐。
type BalanceSnapshot struct {
	Pre  []uint64
	Post []uint64
}

// TokenBalance 表示某个 SPL Token 账户在某一时刻（执行前或执行后）的余额。
type TokenBalance struct {
	AccountIndex int    // token account 在 AccountTable 中的下标
	Mint         string // mint 地址（base58）
	Owner        string // 账户所有者，节点可能不返回
	Amount       string // 最小单位的整数金额（十进制字符串）
	Decimals     uint8  // Token 精度
}

// TokenBalanceSnapshot 表示 pre/post 两组 token 余额。
// HasPre / HasPost 区分“节点未返回”与“返回了空列表”。
type TokenBalanceSnapshot struct {
	Pre     []TokenBalance
	Post    []TokenBalance
	HasPre  bool
	HasPost bool
}
