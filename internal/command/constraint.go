package command

// Constraint 命令前置条件。Test 返回空串表示通过，
// 否则返回直接展示给玩家的拒绝原因。
type Constraint struct {
	Name string
	Test func(b *Base) string
}
