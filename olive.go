package olive

import (
	"log"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/olive-web/olive/config"
	"github.com/olive-web/olive/internal/address"
	"github.com/olive-web/olive/internal/server/http"
	"github.com/olive-web/olive/transport"
)

// Logger receives the accept log, the echoed request lines and response heads and
// reports about aborted connections.
type Logger interface {
	Printf(format string, v ...any)
}

// App serves a single listening socket, one connection at a time.
type App struct {
	addr   address.Address
	cfg    *config.Config
	logger Logger
	hooks  hooks
	tcp    *transport.TCP
	served *atomic.Uint64
}

// New returns a new App instance. The address may be just a port, in which case all the
// interfaces are listened.
func New(addr string) (*App, error) {
	appAddr, err := address.Parse(addr)
	if err != nil {
		return nil, errors.Wrap(err, "olive: bad addr")
	}

	return &App{
		addr:   appAddr,
		cfg:    config.Default(),
		logger: log.Default(),
		tcp:    transport.NewTCP(),
		served: atomic.NewUint64(0),
	}, nil
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

func (a *App) Logger(logger Logger) *App {
	a.logger = logger
	return a
}

// NotifyOnStart calls the callback right after the socket was bound, before the first
// connection is accepted.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after the accept loop exited and the socket was closed.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds the socket and accepts connections until Stop is called or a resource
// failure occurs. In the latter case the *http1.ResourceError is returned.
func (a *App) Serve() error {
	if err := config.Validate(a.cfg); err != nil {
		return err
	}

	if err := a.tcp.Bind(a.addr.String()); err != nil {
		return err
	}

	callIfNotNil(a.hooks.OnStart)
	server := http.NewServer(a.cfg, a.logger)

	err := a.tcp.Listen(a.cfg.NET, func(conn net.Conn) error {
		defer a.served.Inc()
		return server.Serve(conn)
	})

	if cerr := a.tcp.Close(); err == nil {
		err = cerr
	}

	callIfNotNil(a.hooks.OnStop)

	return err
}

// Addr returns the bound address, which is useful when port 0 was requested. Must be
// called only from the OnStart hook or after it fired.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Served returns the number of connections processed so far.
func (a *App) Served() uint64 {
	return a.served.Load()
}

// Stop makes Serve return after the current connection is done.
//
// NOTE: the call isn't blocking. The accept loop notices it at most after
// NET.AcceptLoopInterruptPeriod
func (a *App) Stop() {
	a.tcp.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
