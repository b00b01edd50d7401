package ochp

import "errors"

var (
	// ErrInvalidArgument 必填参数缺失或非法，属于调用方编程错误
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingElement 解析时缺少必需的XML元素
	ErrMissingElement = errors.New("missing mandatory element")

	// ErrInvalidValue XML元素的值无法识别
	ErrInvalidValue = errors.New("invalid value")
)
