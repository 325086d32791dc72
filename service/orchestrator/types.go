package orchestrator

import (
	"context"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"go.uber.org/zap"
)

type service struct {
	providers provider.Factory
	store     preferences.Store
	logger    *zap.Logger
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
