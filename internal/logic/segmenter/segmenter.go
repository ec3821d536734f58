package segmenter

import (
	"slices"

	"castsol/internal/logic/domain"
)

// Segment 将一条主指令下的 inner 指令序列切分为若干 Run。
//
// meta 只记录了每条 inner 指令的 stackHeight，没有父子关系，这里用启发式方式近似调用树：
//   - 累积区为空时，当前指令直接成为新 Run 的起点（无论其 stackHeight 是否存在）；
//   - 当前与累积区末尾的 stackHeight 都存在且当前更深时，继续追加到同一个 Run；
//   - 都存在但当前不更深时，结束当前 Run，当前指令开启下一个 Run；
//   - 任一方 stackHeight 缺失时，当前指令被丢弃，累积区保持不变。
//
// 结果并不保证是真实的调用树，只保证每个 Run 非空且保持原始顺序。
// ordinal 为主指令序号（从 1 开始），Run.Seq 在每条主指令内从 1 开始递增。
func Segment(ordinal int, inners []domain.InnerInstruction) []domain.Run {
	if len(inners) == 0 {
		return nil
	}

	var runs []domain.Run
	open := make([]domain.InnerInstruction, 0, len(inners))
	seq := 1

	flush := func() {
		if len(open) == 0 {
			return
		}
		runs = append(runs, domain.Run{
			Ordinal: ordinal,
			Seq:     seq,
			Items:   drain(open),
		})
		seq++
		open = open[:0]
	}

	for _, ix := range inners {
		if len(open) == 0 {
			open = append(open, ix)
			continue
		}

		top, topKnown := open[len(open)-1].StackHeight.Get()
		cur, curKnown := ix.StackHeight.Get()
		if !topKnown || !curKnown {
			continue
		}

		if cur > top {
			open = append(open, ix)
			continue
		}

		flush()
		open = append(open, ix)
	}
	flush()

	return runs
}

// drain 按后进先出顺序弹出累积区，再反转回压入顺序。
// 返回新切片，调用方可以继续复用 open 的底层数组。
func drain(open []domain.InnerInstruction) []domain.InnerInstruction {
	popped := make([]domain.InnerInstruction, 0, len(open))
	for i := len(open) - 1; i >= 0; i-- {
		popped = append(popped, open[i])
	}
	slices.Reverse(popped)
	return popped
}
