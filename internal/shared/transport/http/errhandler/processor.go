package errhandler

import "sort"

// Processor 处理某一类错误。CanProcess 为真时才会调用 Process；
// Priority 越小越先匹配，链上第一个命中的 processor 独占处理。
type Processor interface {
	CanProcess(err error) bool
	Process(err error, ec *ErrorContext) *Result
	Priority() int
}

// orderProcessors 按优先级升序排序（稳定排序，同优先级保持注册顺序）。
func orderProcessors(ps []Processor) []Processor {
	out := make([]Processor, len(ps))
	copy(out, ps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}
