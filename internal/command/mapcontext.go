package command

import "github.com/peppone-choi/opensamguk-sub002/internal/game/domain"

// MapContext 约束检查用的世界快照：城市归属、补给、邻接、交战势力。
// 每个武将回合开始时由执行器构建一次。
type MapContext struct {
	CityNationByID map[domain.CityID]domain.NationID
	CitySupplyByID map[domain.CityID]bool
	Adjacency      map[domain.CityID][]domain.CityID
	AtWarNationIDs map[domain.NationID]bool
}

// Distance 按邻接图 BFS 求城市距离，不可达返回 -1。
func (m *MapContext) Distance(from, to domain.CityID) int {
	if from == to {
		return 0
	}
	if m == nil || len(m.Adjacency) == 0 {
		return -1
	}

	visited := map[domain.CityID]bool{from: true}
	type node struct {
		city domain.CityID
		dist int
	}
	queue := []node{{from, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range m.Adjacency[cur.city] {
			if next == to {
				return cur.dist + 1
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, node{next, cur.dist + 1})
		}
	}
	return -1
}

// IsAtWar 所属势力是否与目标势力交战中。
func (m *MapContext) IsAtWar(target domain.NationID) bool {
	return m != nil && m.AtWarNationIDs[target]
}
