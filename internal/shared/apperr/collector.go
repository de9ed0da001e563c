package apperr

// Collector 聚合一次校验过程中的全部字段错误，最后统一产出一个 VAL001。
// 目的：客户端一次往返就能拿到所有无效字段，而不是只看到第一个。
// 零值可用；不支持并发使用（校验发生在单个请求的处理线程上）。
type Collector struct {
	errs []FieldError
}

func (c *Collector) Add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

func (c *Collector) AddDetail(fe FieldError) {
	c.errs = append(c.errs, fe)
}

// AddError 把已构造的校验错误的字段错误并入收集器（嵌套校验用）。
func (c *Collector) AddError(err *Error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err.FieldErrors()...)
}

func (c *Collector) HasErrors() bool {
	return len(c.errs) != 0
}

// Err 在有累积错误时返回 *Error，否则返回 nil。
// 返回 error 接口会踩 typed-nil 的坑，所以这里直接返回具体类型。
func (c *Collector) Err() *Error {
	if len(c.errs) == 0 {
		return nil
	}
	return NewValidationList(c.errs)
}
