package rng

// NextRangeF 在 [min, max] 内抽取浮点数。
func (r *Rand) NextRangeF(min, max float64) float64 {
	return r.NextFloat()*(max-min) + min
}

// NextChance 以概率 p 返回 true。
// p==0.5 走单比特路径，和掷硬币语义一致。
func (r *Rand) NextChance(p float64) bool {
	switch {
	case p >= 1:
		return true
	case p <= 0:
		return false
	case p == 0.5:
		return r.NextBool()
	}
	return r.NextFloat() < p
}

// Shuffle 原地洗牌。固定种子下结果可复现。
func Shuffle[T any](r *Rand, items []T) {
	cnt := int64(len(items))
	for srcIdx := int64(0); srcIdx < cnt; srcIdx++ {
		destIdx := r.NextBounded(cnt-srcIdx-1) + srcIdx
		if destIdx != srcIdx {
			items[srcIdx], items[destIdx] = items[destIdx], items[srcIdx]
		}
	}
}

// Choice 等概率取一个元素。空切片 panic。
func Choice[T any](r *Rand, items []T) T {
	return items[r.NextBounded(int64(len(items))-1)]
}

// ChoiceWeighted 按权重取一个元素，负权重按 0 处理。
// 全部权重为 0 时退化为返回首元素。
func ChoiceWeighted[T any](r *Rand, items []T, weight func(T) float64) T {
	var sum float64
	for _, it := range items {
		if w := weight(it); w > 0 {
			sum += w
		}
	}
	rd := r.NextFloat() * sum
	for _, it := range items {
		w := weight(it)
		if w < 0 {
			w = 0
		}
		if rd <= w {
			return it
		}
		rd -= w
	}
	return items[len(items)-1]
}
