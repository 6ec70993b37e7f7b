package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/syssam/classflow"
	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/compiler/gen/java"
	"github.com/syssam/classflow/model"
	"github.com/syssam/classflow/rules"
	"github.com/syssam/classflow/runner"
)

// ErrNoPending is returned by Select when no connection is pending.
var ErrNoPending = errors.New("graph: no pending connection")

// State is the state of the connection state machine.
type State int

// Connection states.
const (
	Idle State = iota
	PendingSelection
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case PendingSelection:
		return "PendingSelection"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type (
	// ConnectEvent is a connection drawn between two entities, with the
	// anchor tokens of both ends.
	ConnectEvent struct {
		SourceID     string
		TargetID     string
		SourceAnchor model.Anchor
		TargetAnchor model.Anchor
	}

	// Selection is the pending connection awaiting a relationship kind.
	Selection struct {
		SourceID     string
		TargetID     string
		SourceAnchor model.Anchor
		TargetAnchor model.Anchor
	}

	// Executor runs generated code. *runner.Client implements it.
	Executor interface {
		Execute(ctx context.Context, req runner.Request) (*runner.Result, error)
	}
)

// Editor owns a diagram and serializes every mutation of it. After each
// structural mutation the code is regenerated and cached on the entities.
type Editor struct {
	mu      sync.Mutex
	diagram model.Diagram
	code    string
	pending *Selection
	used    map[string]struct{}
	result  *runner.Result

	ids    model.IDGenerator
	policy rules.Policy
	gen    *gen.Config
	log    *slog.Logger
}

// New returns an editor for an empty diagram, or the diagram set with
// WithDiagram. Code is rendered with the java dialect unless another one
// is configured.
func New(opts ...Option) (*Editor, error) {
	c, err := gen.NewConfig(gen.WithDialect(java.NewDialect()))
	if err != nil {
		return nil, err
	}
	e := &Editor{
		used:   make(map[string]struct{}),
		ids:    model.RandomIDs(),
		policy: rules.DefaultPolicy(),
		gen:    c,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	for _, ent := range e.diagram.Entities {
		e.used[ent.ID] = struct{}{}
	}
	if err := e.commit(e.diagram); err != nil {
		return nil, err
	}
	return e, nil
}

// commit regenerates the code of d and makes it the current state. The
// state is left unchanged when generation fails.
func (e *Editor) commit(d model.Diagram) error {
	out, err := gen.Generate(e.gen, d.Entities, d.Relationships)
	if err != nil {
		return err
	}
	for i := range d.Entities {
		d.Entities[i].GeneratedCode = out.Files[i].Source
	}
	e.diagram, e.code = d, out.Source
	return nil
}

// State returns the state of the connection state machine.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != nil {
		return PendingSelection
	}
	return Idle
}

// Pending returns the pending selection, if any.
func (e *Editor) Pending() (Selection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return Selection{}, false
	}
	return *e.pending, true
}

// Code returns the aggregate source of the diagram.
func (e *Editor) Code() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.code
}

// Regenerate renders the diagram again and returns the aggregate source.
func (e *Editor) Regenerate() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.commit(e.diagram.Clone()); err != nil {
		return "", err
	}
	return e.code, nil
}

// Snapshot returns a deep copy of the current diagram.
func (e *Editor) Snapshot() model.Diagram {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diagram.Clone()
}

// Entity returns a copy of the entity with the given id.
func (e *Editor) Entity(id string) (model.ClassEntity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ent, ok := e.diagram.Entity(id)
	return ent.Clone(), ok
}

// SetMain sets the entry point text handed to the execution service.
func (e *Editor) SetMain(main string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.diagram.Main = main
}

// Main returns the entry point text.
func (e *Editor) Main() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diagram.Main
}

// AddEntity adds a fresh entity of the given kind with the default name
// and seeded members.
func (e *Editor) AddEntity(kind model.Kind) (model.ClassEntity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !kind.Valid() {
		return model.ClassEntity{}, fmt.Errorf("graph: add entity: invalid kind %q", string(kind))
	}
	id, err := e.newID()
	if err != nil {
		return model.ClassEntity{}, err
	}
	return e.add(model.NewEntity(id, kind))
}

// DuplicateEntity adds a copy of the entity with the given id under a
// fresh id.
func (e *Editor) DuplicateEntity(id string) (model.ClassEntity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.diagram.Entity(id)
	if !ok {
		return model.ClassEntity{}, classflow.NewNotFoundError("entity", id)
	}
	nid, err := e.newID()
	if err != nil {
		return model.ClassEntity{}, err
	}
	return e.add(model.Duplicate(src, nid))
}

func (e *Editor) add(ent model.ClassEntity) (model.ClassEntity, error) {
	d := e.diagram.Clone()
	d.Entities = append(d.Entities, ent)
	if err := e.commit(d); err != nil {
		return model.ClassEntity{}, err
	}
	e.used[ent.ID] = struct{}{}
	e.log.Debug("entity added", slog.String("id", ent.ID), slog.String("kind", ent.Kind.String()))
	return e.diagram.Entities[len(e.diagram.Entities)-1].Clone(), nil
}

// newID draws ids until one that was never used in this diagram is found.
func (e *Editor) newID() (string, error) {
	for range 16 {
		id := e.ids.NewID()
		if _, used := e.used[id]; !used && id != "" {
			return id, nil
		}
	}
	return "", errors.New("graph: id generator keeps returning used ids")
}

// UpdateEntity replaces the entity with the given id by the result of fn.
// The id of the entity cannot be changed.
func (e *Editor) UpdateEntity(id string, fn func(model.ClassEntity) (model.ClassEntity, error)) (model.ClassEntity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.diagram.EntityIndex(id)
	if i < 0 {
		return model.ClassEntity{}, classflow.NewNotFoundError("entity", id)
	}
	updated, err := fn(e.diagram.Entities[i].Clone())
	if err != nil {
		if classflow.IsInvalidIndex(err) {
			e.log.Error("invalid member index", slog.String("entity", id), slog.Any("error", err))
		}
		return model.ClassEntity{}, err
	}
	updated.ID = id
	d := e.diagram.Clone()
	d.Entities[i] = updated
	if err := e.commit(d); err != nil {
		return model.ClassEntity{}, err
	}
	return e.diagram.Entities[i].Clone(), nil
}

// Rename renames the entity with the given id.
func (e *Editor) Rename(id, name string) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		if strings.TrimSpace(name) == "" {
			return ent, errors.New("graph: entity name cannot be empty")
		}
		return ent.Rename(name), nil
	})
}

// Move sets the position of the entity with the given id.
func (e *Editor) Move(id string, p model.Position) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.WithPosition(p), nil
	})
}

// AddProperty appends a property to the entity with the given id.
func (e *Editor) AddProperty(id string, p model.Property) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.AddProperty(p), nil
	})
}

// UpdateProperty replaces the i-th property of the entity with the given id.
func (e *Editor) UpdateProperty(id string, i int, p model.Property) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.UpdateProperty(i, p)
	})
}

// RemoveProperty removes the i-th property of the entity with the given id.
func (e *Editor) RemoveProperty(id string, i int) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.RemoveProperty(i)
	})
}

// MoveProperty moves a property of the entity with the given id.
func (e *Editor) MoveProperty(id string, from, to int) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.MoveProperty(from, to)
	})
}

// AddMethod appends a method to the entity with the given id.
func (e *Editor) AddMethod(id string, m model.Method) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.AddMethod(m), nil
	})
}

// UpdateMethod replaces the i-th method of the entity with the given id.
func (e *Editor) UpdateMethod(id string, i int, m model.Method) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.UpdateMethod(i, m)
	})
}

// RemoveMethod removes the i-th method of the entity with the given id.
func (e *Editor) RemoveMethod(id string, i int) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.RemoveMethod(i)
	})
}

// MoveMethod moves a method of the entity with the given id.
func (e *Editor) MoveMethod(id string, from, to int) (model.ClassEntity, error) {
	return e.UpdateEntity(id, func(ent model.ClassEntity) (model.ClassEntity, error) {
		return ent.MoveMethod(from, to)
	})
}

// DeleteEntity removes the entity with the given id and its incident
// relationships. Its id is never handed out again.
func (e *Editor) DeleteEntity(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := RemoveEntity(e.diagram, id)
	if err != nil {
		return err
	}
	if err := e.commit(d); err != nil {
		return err
	}
	if e.pending != nil && (e.pending.SourceID == id || e.pending.TargetID == id) {
		e.pending = nil
	}
	e.log.Debug("entity deleted", slog.String("id", id))
	return nil
}

// Connect enters the pending state for a drawn connection. A connection
// drawn from a top anchor or into a bottom anchor is reversed so that the
// source is always the dependent entity. Self connections and unknown
// entities are rejected and leave the editor idle. A pending selection is
// replaced.
func (e *Editor) Connect(ev ConnectEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = nil
	src, dst := ev.SourceID, ev.TargetID
	if ev.SourceAnchor.IsTop() || ev.TargetAnchor.IsBottom() {
		src, dst = dst, src
	}
	if src == dst {
		err := classflow.NewRejectedRelationshipError(src, dst, "", "self connections are not allowed", nil)
		e.log.Debug("connection rejected", slog.Any("error", err))
		return err
	}
	for _, id := range []string{src, dst} {
		if e.diagram.EntityIndex(id) < 0 {
			return classflow.NewNotFoundError("entity", id)
		}
	}
	e.pending = &Selection{
		SourceID:     src,
		TargetID:     dst,
		SourceAnchor: ev.SourceAnchor,
		TargetAnchor: ev.TargetAnchor,
	}
	return nil
}

// Cancel discards the pending selection.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = nil
}

// Select completes the pending selection with a relationship kind. The
// relationship is created when the policy allows it, together with the
// members it synthesizes. The editor is idle afterwards in every case.
func (e *Editor) Select(kind model.RelationshipKind) (model.Relationship, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.pending
	e.pending = nil
	if p == nil {
		return model.Relationship{}, ErrNoPending
	}
	src, ok := e.diagram.Entity(p.SourceID)
	if !ok {
		return model.Relationship{}, classflow.NewNotFoundError("entity", p.SourceID)
	}
	dst, ok := e.diagram.Entity(p.TargetID)
	if !ok {
		return model.Relationship{}, classflow.NewNotFoundError("entity", p.TargetID)
	}
	req := rules.Request{Source: src, Target: dst, Kind: kind, Diagram: e.diagram}
	if err := e.policy.Check(req); err != nil {
		e.log.Debug("relationship rejected", slog.Any("error", err))
		return model.Relationship{}, err
	}
	r := model.NewRelationship(src.ID, dst.ID, kind)
	r.SourceAnchor, r.TargetAnchor = p.SourceAnchor, p.TargetAnchor
	r.TargetTop = p.TargetAnchor.IsTop()
	d, err := ApplyRelationship(e.diagram, r)
	if err != nil {
		return model.Relationship{}, err
	}
	if err := e.commit(d); err != nil {
		return model.Relationship{}, err
	}
	e.log.Debug("relationship applied", slog.String("id", r.ID), slog.String("kind", kind.String()))
	return r, nil
}

// DeleteRelationship removes the relationship with the given id after
// reconciling the members it synthesized.
func (e *Editor) DeleteRelationship(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := RemoveRelationship(e.diagram, id)
	if err != nil {
		return err
	}
	if err := e.commit(d); err != nil {
		return err
	}
	e.log.Debug("relationship deleted", slog.String("id", id))
	return nil
}

// Run hands the current code and entry point to the executor and records
// the result. The editor is not locked during the call.
func (e *Editor) Run(ctx context.Context, x Executor) (*runner.Result, error) {
	e.mu.Lock()
	req := runner.Request{Code: e.code, Main: e.diagram.Main}
	e.mu.Unlock()

	res, err := x.Execute(ctx, req)
	if res == nil {
		res = &runner.Result{}
		if err != nil {
			res.Error = err.Error()
		}
	}
	e.mu.Lock()
	e.result = res
	e.mu.Unlock()
	return res, err
}

// LastResult returns the result of the last Run.
func (e *Editor) LastResult() (runner.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return runner.Result{}, false
	}
	return *e.result, true
}
