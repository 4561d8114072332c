package mcp

import (
	"context"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"astrolabe/internal/service"
	"astrolabe/internal/store"
)

type Server struct {
	db  store.Store
	svc *service.Service
	now func() time.Time
	mcp *sdk.Server
}

func NewServer(db store.Store, svc *service.Service, version string) *Server {
	s := &Server{
		db:  db,
		svc: svc,
		now: time.Now,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "astrolabe",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
