// Package registry 按动作代号创建命令实例。
// 未知的武将代号退化为休息，未知的势力代号直接拒绝。
package registry

import (
	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/command/general"
	"github.com/peppone-choi/opensamguk-sub002/internal/command/nation"
)

type Factory func(b *command.Base) command.Command

type Registry struct {
	general map[string]Factory
	nation  map[string]Factory
}

func New() *Registry {
	return &Registry{
		general: map[string]Factory{
			"rest":        general.NewRest,
			"devAgri":     general.NewDevAgri,
			"devComm":     general.NewDevComm,
			"devSecu":     general.NewDevSecu,
			"devDef":      general.NewDevDef,
			"devWall":     general.NewDevWall,
			"draft":       general.NewDraft,
			"levy":        general.NewLevy,
			"train":       general.NewTrain,
			"boostMorale": general.NewMorale,
			"advance":     general.NewAdvance,
			"move":        general.NewMove,
			"donate":      general.NewDonate,
		},
		nation: map[string]Factory{
			"nationRest": nation.NewRest,
			"reward":     nation.NewReward,
			"confiscate": nation.NewConfiscate,
			"aid":        nation.NewAid,
			"raid":       nation.NewRaid,
		},
	}
}

func (r *Registry) CreateGeneral(actionCode string, b *command.Base) command.Command {
	if f, ok := r.general[actionCode]; ok {
		return f(b)
	}
	return general.NewRest(b)
}

func (r *Registry) CreateNation(actionCode string, b *command.Base) (command.Command, bool) {
	f, ok := r.nation[actionCode]
	if !ok {
		return nil, false
	}
	return f(b), true
}

func (r *Registry) HasGeneral(actionCode string) bool {
	_, ok := r.general[actionCode]
	return ok
}

func (r *Registry) HasNation(actionCode string) bool {
	_, ok := r.nation[actionCode]
	return ok
}
