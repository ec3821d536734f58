package domain

// Tx 表示已完成规范化的单笔交易，是渲染阶段的唯一输入。创建后不再修改。
type Tx struct {
	Signature    string           // 用户传入的签名文本，原样展示
	Status       string           // "Success" 或执行错误的文本形式
	Fee          uint64           // 手续费（lamports）
	ComputeUnits *uint64          // 消耗的计算单元，节点未返回时为 nil
	Accounts     AccountTable     // 完整账户表
	Instructions []TopInstruction // 主指令（含各自的 inner 指令）

	Balances      BalanceSnapshot
	TokenBalances TokenBalanceSnapshot
}

// ComputeUnitsOrZero 返回消耗的计算单元，缺失时为 0
func (tx *Tx) ComputeUnitsOrZero() uint64 {
	if tx.ComputeUnits == nil {
		return 0
	}
	return *tx.ComputeUnits
}
