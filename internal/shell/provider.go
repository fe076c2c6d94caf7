// Package shell exposes the calculator to GNOME Shell as an
// org.gnome.Shell.SearchProvider2 D-Bus object.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/hoppxi/wigo-calc/internal/clip"
	"github.com/hoppxi/wigo-calc/pkg/calc"
)

const Interface = "org.gnome.Shell.SearchProvider2"

var ErrNameTaken = errors.New("bus name already owned by another process")

// Copier receives the text of an activated result.
type Copier interface {
	Copy(text string) error
}

// Provider implements SearchProvider2. Every exported method is a D-Bus
// method; query failures show up as an empty result list, never as a D-Bus
// error.
type Provider struct {
	calc   *calc.Calculator
	copier Copier
	icon   string
	store  *resultStore
	logger *slog.Logger
}

func NewProvider(c *calc.Calculator, copier Copier, icon string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		calc:   c,
		copier: copier,
		icon:   icon,
		store:  newResultStore(),
		logger: logger,
	}
}

func (p *Provider) query(terms []string) []string {
	ids := []string{}
	for _, res := range p.calc.Results(context.Background(), terms) {
		p.store.put(res)
		ids = append(ids, res.ID)
	}
	return ids
}

func (p *Provider) GetInitialResultSet(terms []string) ([]string, *dbus.Error) {
	return p.query(terms), nil
}

// The refined query is evaluated from scratch; previous results are not
// filtered.
func (p *Provider) GetSubsearchResultSet(previous []string, terms []string) ([]string, *dbus.Error) {
	return p.query(terms), nil
}

func (p *Provider) GetResultMetas(ids []string) ([]map[string]dbus.Variant, *dbus.Error) {
	metas := []map[string]dbus.Variant{}
	for _, id := range ids {
		res, ok := p.store.get(id)
		if !ok {
			continue
		}
		metas = append(metas, map[string]dbus.Variant{
			"id":            dbus.MakeVariant(res.ID),
			"name":          dbus.MakeVariant(res.Result),
			"description":   dbus.MakeVariant(res.Expression),
			"gicon":         dbus.MakeVariant(p.icon),
			"clipboardText": dbus.MakeVariant(clip.Clean(res.Result)),
		})
	}
	return metas, nil
}

// ActivateResult copies the activated result, or the latest one when the ID
// has already been forgotten.
func (p *Provider) ActivateResult(id string, terms []string, timestamp uint32) *dbus.Error {
	res, ok := p.store.get(id)
	if !ok {
		res, ok = p.store.Latest()
	}
	if !ok {
		return nil
	}
	p.copy(res)
	return nil
}

// LaunchSearch evaluates the terms and copies the answer.
func (p *Provider) LaunchSearch(terms []string, timestamp uint32) *dbus.Error {
	res, err := p.calc.Query(context.Background(), terms)
	if err != nil {
		return nil
	}
	p.store.put(res)
	p.copy(res)
	return nil
}

func (p *Provider) copy(res calc.DisplayResult) {
	if err := p.copier.Copy(res.Result); err != nil {
		p.logger.Warn("copy to clipboard failed", "result", res.Result, "err", err)
		return
	}
	p.logger.Debug("copied result", "id", res.ID, "result", res.Result)
}

// Service owns the bus name the provider is published under.
type Service struct {
	conn    *dbus.Conn
	busName string
}

// Serve connects to the session bus, exports p at path and claims busName.
func Serve(p *Provider, busName string, path dbus.ObjectPath) (*Service, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	if err := export(conn, p, path); err != nil {
		conn.Close()
		return nil, err
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("request name %s: %w", busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", busName, ErrNameTaken)
	}

	p.logger.Info("search provider started", "bus_name", busName, "path", path)
	return &Service{conn: conn, busName: busName}, nil
}

func export(conn *dbus.Conn, p *Provider, path dbus.ObjectPath) error {
	if err := conn.Export(p, path, Interface); err != nil {
		return fmt.Errorf("export provider: %w", err)
	}

	node := &introspect.Node{
		Name: string(path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{Name: Interface, Methods: introspect.Methods(p)},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("export introspection: %w", err)
	}
	return nil
}

// Done is closed when the bus connection goes away.
func (s *Service) Done() <-chan struct{} {
	return s.conn.Context().Done()
}

func (s *Service) Close() error {
	_, _ = s.conn.ReleaseName(s.busName)
	return s.conn.Close()
}

// ProviderINI is the file GNOME Shell reads from
// /usr/share/gnome-shell/search-providers/ to find the provider.
func ProviderINI(desktopID, busName string, path dbus.ObjectPath) string {
	var b strings.Builder
	b.WriteString("[Shell Search Provider]\n")
	fmt.Fprintf(&b, "DesktopId=%s\n", desktopID)
	fmt.Fprintf(&b, "BusName=%s\n", busName)
	fmt.Fprintf(&b, "ObjectPath=%s\n", path)
	b.WriteString("Version=2\n")
	return b.String()
}
