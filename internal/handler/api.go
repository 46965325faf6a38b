package handler

import (
	"time"

	"github.com/wems/internal/localdb"
	"github.com/wems/internal/service"
	"github.com/wems/internal/storage/indexed"
	"github.com/wems/internal/storage/jsonfile"
	"github.com/wems/internal/storage/kvstore"
	"github.com/wems/internal/storage/remote"
)

// Dependencies 是构造 API 所需的组件
type Dependencies struct {
	Store    *localdb.Store
	KV       *kvstore.Store
	Local    *indexed.Store
	Remote   *remote.Client
	JSONFile *jsonfile.Client
	Auth     *service.AuthService
	Uploads  *service.UploadService
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store    *localdb.Store
	kv       *kvstore.Store
	local    *indexed.Store
	remote   *remote.Client
	jsonFile *jsonfile.Client
	auth     *service.AuthService
	uploads  *service.UploadService
	now      func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(deps Dependencies) *API {
	return &API{
		store:    deps.Store,
		kv:       deps.KV,
		local:    deps.Local,
		remote:   deps.Remote,
		jsonFile: deps.JSONFile,
		auth:     deps.Auth,
		uploads:  deps.Uploads,
		now:      time.Now,
	}
}
