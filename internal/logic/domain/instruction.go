package domain

import (
	"fmt"
	"strconv"
)

// StackHeight 表示 inner 指令的调用栈深度。
// 节点可能不返回该字段（旧版本节点或部分历史交易），因此“缺失”是一个独立的合法状态，零值即缺失。
type StackHeight struct {
	value uint32
	known bool
}

func NewStackHeight(v uint32) StackHeight {
	return StackHeight{value: v, known: true}
}

// Get 返回深度值，以及该值是否存在
func (h StackHeight) Get() (uint32, bool) {
	return h.value, h.known
}

func (h StackHeight) String() string {
	if !h.known {
		return "none"
	}
	return strconv.FormatUint(uint64(h.value), 10)
}

// TopInstruction 表示交易 message 中的一条主指令。
type TopInstruction struct {
	ProgramIDIndex int                // 程序账户在 AccountTable 中的下标
	Accounts       []int              // 输入账户下标，保持原始顺序
	Data           []byte             // 原始指令数据，渲染时再做 base58 编码
	Inners         []InnerInstruction // 执行期间产生的 inner 指令，按 meta 给出的顺序排列
}

// InnerInstruction 表示主指令执行过程中通过 CPI 调用产生的一条 inner 指令。
type InnerInstruction struct {
	StackHeight    StackHeight
	ProgramIDIndex int
	Accounts       []int
	Data           string // 节点返回的已编码文本（base58），原样输出
}

// Run 是分段算法选出的一组 inner 指令，渲染时逐条递增缩进。
type Run struct {
	Ordinal int // 所属主指令序号（从 1 开始）
	Seq     int // 本主指令内的分段序号（从 1 开始）
	Items   []InnerInstruction
}

// Label 返回形如 #2.1 的分段标签
func (r Run) Label() string {
	return fmt.Sprintf("#%d.%d", r.Ordinal, r.Seq)
}
