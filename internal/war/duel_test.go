package war

import (
	"math"
	"testing"
)

func duelInput(attackerStat, defenderStat float64, battleType int) DuelInput {
	return DuelInput{
		Type:       DuelStrength,
		BattleType: battleType,
		Attacker: DuelParticipant{
			ID:    1,
			Name:  "吕布",
			Stats: DuelStats{Leadership: 80, Strength: attackerStat, Intel: 30},
		},
		Defender: DuelParticipant{
			ID:    2,
			Name:  "文官",
			Stats: DuelStats{Leadership: 60, Strength: defenderStat, Intel: 90},
		},
		Context:  DuelContext{OpenYear: 190, OpenMonth: 3, Stage: 1, Phase: 1, MatchIndex: 0},
		BaseSeed: "duel-seed",
	}
}

func TestResolveDuel_同一输入完全复现(t *testing.T) {
	a := ResolveDuel(duelInput(95, 72, DuelFriendly))
	b := ResolveDuel(duelInput(95, 72, DuelFriendly))

	if a.WinnerID != b.WinnerID || a.Draw != b.Draw || a.Rounds != b.Rounds {
		t.Fatalf("结果不可复现: %+v vs %+v", a, b)
	}
	if a.AttackerTotalDamage != b.AttackerTotalDamage || a.DefenderTotalDamage != b.DefenderTotalDamage {
		t.Fatal("伤害合计不可复现")
	}
	if len(a.Logs) != len(b.Logs) {
		t.Fatalf("日志条数不可复现: %d vs %d", len(a.Logs), len(b.Logs))
	}
	for i := range a.Logs {
		if a.Logs[i] != b.Logs[i] {
			t.Fatalf("第 %d 条日志不一致: %q vs %q", i, a.Logs[i], b.Logs[i])
		}
	}
}

func TestResolveDuel_实力悬殊时强者获胜(t *testing.T) {
	res := ResolveDuel(duelInput(100, 10, DuelKnockout))

	if res.Draw {
		t.Fatal("十倍实力差不应打平")
	}
	if res.WinnerID != 1 {
		t.Fatalf("winner = %d, want 1", res.WinnerID)
	}
	if res.LoserID != 2 {
		t.Fatalf("loser = %d, want 2", res.LoserID)
	}
	if res.Rounds < 1 || res.Rounds > 10 {
		t.Fatalf("淘汰赛回合数 %d 超出 1..10", res.Rounds)
	}
}

func TestResolveDuel_零气力首合即平(t *testing.T) {
	res := ResolveDuel(duelInput(0, 0, DuelKnockout))

	if !res.Draw {
		t.Fatal("双方零气力应判平")
	}
	if res.WinnerID != 0 || res.LoserID != 0 {
		t.Fatal("平局不应有胜负方")
	}
	if res.Rounds != 1 {
		t.Fatalf("rounds = %d, want 1", res.Rounds)
	}
}

func TestDuelStat_科目取对应属性(t *testing.T) {
	stats := DuelStats{Leadership: 10, Strength: 20, Intel: 30}

	if got := duelStat(DuelLeadership, stats); got != 10 {
		t.Fatalf("leadership = %v", got)
	}
	if got := duelStat(DuelStrength, stats); got != 20 {
		t.Fatalf("strength = %v", got)
	}
	if got := duelStat(DuelIntel, stats); got != 30 {
		t.Fatalf("intel = %v", got)
	}
	want := (10.0 + 20.0 + 30.0) * 7.0 / 15.0
	if got := duelStat(DuelTotal, stats); math.Abs(got-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", got, want)
	}
}

func TestLevelRatio_等级差对称压制(t *testing.T) {
	if got := levelRatio(5, 5); got != 1 {
		t.Fatalf("同等级应为 1, got %v", got)
	}
	up := levelRatio(10, 0)
	down := levelRatio(0, 10)
	if math.Abs(up+down-2.0) > 1e-9 {
		t.Fatalf("压制系数不对称: %v + %v", up, down)
	}
	if up <= 1 || down >= 1 {
		t.Fatalf("高等级应抬升, 低等级应削弱: %v / %v", up, down)
	}
}
