package rng

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// tagToken 带类型前缀序列化，保证 "200"（字符串）和 200（整数）
// 派生出不同的种子。
func tagToken(tag any) string {
	switch v := tag.(type) {
	case string:
		return "s:" + v
	case int:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case int8:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case int16:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case int32:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case int64:
		return "i:" + strconv.FormatInt(v, 10)
	case uint:
		return "i:" + strconv.FormatUint(uint64(v), 10)
	case uint32:
		return "i:" + strconv.FormatUint(uint64(v), 10)
	case uint64:
		return "i:" + strconv.FormatUint(v, 10)
	case bool:
		return "b:" + strconv.FormatBool(v)
	case float64:
		return "f:" + strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return "v:" + fmt.Sprint(v)
	}
}

// DeriveSeed 把密钥和标签序列压成 SHA-256 十六进制串。
func DeriveSeed(secret string, tags ...any) string {
	parts := make([]string, 0, len(tags)+1)
	parts = append(parts, secret)
	for _, tag := range tags {
		parts = append(parts, tagToken(tag))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// New 为某个决策点构造独立的随机源。
// secret 通常是世界的隐藏种子，tags 标识决策点
// （例如 "general"、武将 ID、年月、动作码）。
func New(secret string, tags ...any) *Rand {
	return NewSeeded(DeriveSeed(secret, tags...))
}
