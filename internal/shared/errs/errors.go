package errs

import (
	"errors"
	"fmt"
)

// Kind 错误的粗分类，决定上层怎么处理（重试 / 报警 / 返回给调用方）。
type Kind int

const (
	KindUnknown Kind = iota
	// KindInfra 自身基础设施故障（MySQL / MongoDB 等）
	KindInfra
	// KindDependency 依赖的外部服务故障
	KindDependency
	// KindBusiness 业务规则拒绝，属于正常流程的一部分
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindInfra:
		return "infra"
	case KindDependency:
		return "dependency"
	case KindBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Error 带操作名和分类的错误。Op 形如 "turnRepo.SaveGeneral"。
type Error struct {
	Op    string
	Kind  Kind
	Meta  map[string]any
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: [%s] %v", e.Op, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(op string, kind Kind, cause error, meta map[string]any) *Error {
	return &Error{Op: op, Kind: kind, Meta: meta, Cause: cause}
}

func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Cause: errors.New(msg)}
}

// KindOf 取出错误链上最近一个 *Error 的分类。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsBusiness 判断是否是业务拒绝（不需要报警）。
func IsBusiness(err error) bool {
	return KindOf(err) == KindBusiness
}
