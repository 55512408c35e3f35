package rng

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	// maxSupportBits 有界抽样支持的最大位宽，对应 IEEE754 double 的安全整数范围。
	maxSupportBits = 53
	blockSize      = sha512.Size
)

// MaxSafeInt 能无偏抽取的最大上界（含）。
const MaxSafeInt = int64(1)<<maxSupportBits - 1

// Rand 基于 SHA-512 计数器模式的确定性随机源。
// 同一个种子产生的字节流在任何平台上逐位一致。
// 非并发安全，每个决策点各自持有实例。
type Rand struct {
	seed      []byte
	stateIdx  int32
	buffer    [blockSize]byte
	bufferIdx int

	// genBlock 可在包内测试里替换，用固定模式驱动抽样路径
	genBlock func(seed []byte, stateIdx int32) [blockSize]byte
}

func hashBlock(seed []byte, stateIdx int32) [blockSize]byte {
	h := sha512.New()
	h.Write(seed)
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], uint32(stateIdx))
	h.Write(idx[:])
	var out [blockSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// NewSeeded 直接用字符串种子构造随机源。
// 业务代码请走 New，它会先做种子派生。
func NewSeeded(seed string) *Rand {
	r := &Rand{
		seed:     []byte(seed),
		genBlock: hashBlock,
	}
	r.nextBlock()
	return r
}

func (r *Rand) nextBlock() {
	r.buffer = r.genBlock(r.seed, r.stateIdx)
	r.stateIdx++
	r.bufferIdx = 0
}

// NextBytes 取出接下来的 size 个字节。
func (r *Rand) NextBytes(size int) []byte {
	if size < 0 {
		panic(fmt.Sprintf("rng: negative size %d", size))
	}
	out := make([]byte, size)
	if r.bufferIdx+size <= blockSize {
		copy(out, r.buffer[r.bufferIdx:r.bufferIdx+size])
		r.bufferIdx += size
		if r.bufferIdx == blockSize {
			r.nextBlock()
		}
		return out
	}

	// 跨块：先吃掉当前块剩余，再整块整块地补
	pos := copy(out, r.buffer[r.bufferIdx:])
	remain := size - pos
	for remain > blockSize {
		r.nextBlock()
		copy(out[pos:], r.buffer[:])
		pos += blockSize
		remain -= blockSize
	}
	r.nextBlock()
	copy(out[pos:], r.buffer[:remain])
	r.bufferIdx = remain
	if r.bufferIdx == blockSize {
		r.nextBlock()
	}
	return out
}

// NextBits 取 bitCount 个随机位，按小端字节序返回，
// 末字节的高位清零。
func (r *Rand) NextBits(bitCount int) []byte {
	if bitCount <= 0 {
		panic(fmt.Sprintf("rng: invalid bit count %d", bitCount))
	}
	b := r.NextBytes((bitCount + 7) >> 3)
	if head := bitCount & 7; head != 0 {
		b[len(b)-1] &= 0xFF >> (8 - head)
	}
	return b
}

// NextUint 把 bitCount 个随机位解释成无符号整数。bitCount 至多 64。
func (r *Rand) NextUint(bitCount int) uint64 {
	if bitCount > 64 {
		panic(fmt.Sprintf("rng: bit count %d exceeds 64", bitCount))
	}
	b := r.NextBits(bitCount)
	var padded [8]byte
	copy(padded[:], b)
	return binary.LittleEndian.Uint64(padded[:])
}

// NextBounded 在 [0, max] 内无偏抽取一个整数。
// max 为负时镜像到正区间再取反。max 不得超过 MaxSafeInt。
func (r *Rand) NextBounded(max int64) int64 {
	switch {
	case max == MaxSafeInt:
		return int64(r.NextUint(maxSupportBits))
	case max > MaxSafeInt:
		panic(fmt.Sprintf("rng: bound %d exceeds max safe int", max))
	case max == 0:
		return 0
	case max < 0:
		return -r.NextBounded(-max)
	}

	bitCount := bits.Len64(uint64(max))
	// 拒绝采样，保证每个值等概率
	for {
		n := int64(r.NextUint(bitCount))
		if n <= max {
			return n
		}
	}
}

// NextInt 在 [0, until) 内抽取。
func (r *Rand) NextInt(until int64) int64 {
	return r.NextBounded(until - 1)
}

// NextIntRange 在 [from, until) 内抽取。
func (r *Rand) NextIntRange(from, until int64) int64 {
	return r.NextBounded(until-from-1) + from
}

// NextFloat 返回 [0, 1] 内的浮点数，分辨率 2^-53。
func (r *Rand) NextFloat() float64 {
	const denom = int64(1) << maxSupportBits
	for {
		v := int64(r.NextUint(maxSupportBits + 1))
		if v <= denom {
			return float64(v) / float64(denom)
		}
	}
}

// NextBool 均匀返回 true/false。
func (r *Rand) NextBool() bool {
	return r.NextBits(1)[0] != 0
}
