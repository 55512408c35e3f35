package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/adminapi"
	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/command/registry"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	gamemongo "github.com/peppone-choi/opensamguk-sub002/internal/game/persistence/mongodb"
	gamemysql "github.com/peppone-choi/opensamguk-sub002/internal/game/persistence/mysql"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/infrastructure/db"
	sharedmongo "github.com/peppone-choi/opensamguk-sub002/internal/shared/infrastructure/mongo"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/serverconfig"
	httpserver "github.com/peppone-choi/opensamguk-sub002/internal/shared/transport/http"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
	turnactors "github.com/peppone-choi/opensamguk-sub002/internal/turn/actors"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn/ai"
	"github.com/peppone-choi/opensamguk-sub002/internal/war"
)

// battleResolver 把战斗服务适配到回合服务要的入口形状。
type battleResolver struct {
	svc *war.Service
}

func (b battleResolver) ExecuteBattle(ctx context.Context, attacker *domain.General, targetCity *domain.City, world *domain.World) (turn.BattleOutcome, error) {
	res, err := b.svc.ExecuteBattle(ctx, attacker, targetCity, world)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func main() {
	serverconfig.Load()
	if err := logs.Init("turnd", serverconfig.Conf.Log); err != nil {
		panic(err)
	}

	if err := db.Open(); err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sharedmongo.Open(ctx); err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() {
		_ = sharedmongo.Close(context.Background())
	}()
	mongoDB := sharedmongo.Database()

	store := gamemysql.NewStore(db.DB())
	worlds := gamemysql.NewWorldStore(db.DB())
	queues := gamemysql.NewTurnQueueStore(db.DB())
	events := gamemysql.NewEventStore(db.DB())
	snapshots := gamemongo.NewSnapshotRepository(mongoDB)
	reports := gamemongo.NewBattleReportRepository(mongoDB)

	warService := war.NewService(store, reports)

	service := turn.NewService(turn.ServiceConfig{
		Worlds:       worlds,
		Store:        store,
		GeneralQueue: queues,
		NationQueue:  queues,
		Events:       turn.NewEventDispatcher(events, store),
		Executor:     command.NewExecutor(store, registry.New()),
		Battles:      battleResolver{svc: warService},
		GeneralAI:    ai.NewGeneralAI(store),
		NationAI:     ai.NewNationAI(store),
		Snapshots:    snapshots,
		Collaborators: []turn.Collaborator{
			turn.EconomyCollaborator{},
			turn.NewDiplomacyCollaborator(store),
			turn.NewMaintenanceCollaborator(store),
			turn.NpcSpawnCollaborator{},
			turn.NewUnificationCollaborator(store),
		},
	})

	system := protoactor.NewActorSystem()
	dispatcher := turnactors.NewActorDispatcher(system, service, 0)

	interval := time.Duration(serverconfig.Conf.Turn.IntervalSeconds) * time.Second
	daemon := turn.NewDaemon(worlds, dispatcher, interval)
	daemon.Start(ctx)

	engine := gin.New()
	engine.Use(gin.Recovery())
	adminAddr := fmt.Sprintf("%s:%d", serverconfig.Conf.Admin.Host, serverconfig.Conf.Admin.Port)
	server := httpserver.NewHttpServer(adminAddr, engine)
	adminapi.NewModule(daemon, worlds).Register(server.Group())

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logs.Fatal("admin server failed", zap.Error(err))
		}
	}()
	logs.Info("turn daemon online",
		zap.String("adminAddr", adminAddr),
		zap.Duration("interval", interval))

	<-ctx.Done()

	logs.Info("收到退出信号，准备优雅退出")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("admin server shutdown failed", zap.Error(err))
	}
	daemon.Stop()
	dispatcher.Shutdown()
	system.Shutdown()
}
