package flow

import (
	"fmt"
	"time"
)

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = 0

// Event triggers transitions; EventTick transitions are evaluated on every update
type Event int

const EventTick Event = 0

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)

// Transition defines a link between states
type Transition[T any] struct {
	Target StateID
	Event  Event
	Guard  GuardFunc[T] // nil = always true
}

// Node is one state with its lifecycle actions
type Node[T any] struct {
	ID   StateID
	Name string

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Evaluated in insertion order
	Transitions []Transition[T]
}

// Machine is a flat finite state machine
// T is the context passed to actions and guards
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	active      StateID
	timeInState time.Duration
}

func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{nodes: make(map[StateID]*Node[T])}
}

// AddState adds a node; re-adding an ID replaces it
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{ID: id, Name: name}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(source StateID, t Transition[T]) {
	if node, ok := m.nodes[source]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Init enters the initial state
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	for _, t := range m.allTransitions() {
		if _, ok := m.nodes[t.Target]; !ok {
			return fmt.Errorf("transition targets unknown state ID %d", t.Target)
		}
	}
	m.active = initial
	m.timeInState = 0
	for _, action := range node.OnEnter {
		action(ctx)
	}
	return nil
}

func (m *Machine[T]) allTransitions() []Transition[T] {
	var out []Transition[T]
	for _, n := range m.nodes {
		out = append(out, n.Transitions...)
	}
	return out
}

// Update runs OnUpdate actions and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	node, ok := m.nodes[m.active]
	if !ok {
		return
	}
	m.timeInState += dt
	for _, action := range node.OnUpdate {
		action(ctx)
	}
	m.fire(ctx, node, EventTick)
}

// HandleEvent routes an external event; returns true if a transition occurred
func (m *Machine[T]) HandleEvent(ctx T, ev Event) bool {
	node, ok := m.nodes[m.active]
	if !ok || ev == EventTick {
		return false
	}
	return m.fire(ctx, node, ev)
}

func (m *Machine[T]) fire(ctx T, node *Node[T], ev Event) bool {
	for _, t := range node.Transitions {
		if t.Event != ev {
			continue
		}
		if t.Guard == nil || t.Guard(ctx) {
			m.transition(ctx, t.Target)
			return true
		}
	}
	return false
}

// transition exits the active node and enters target; self transitions are ignored
func (m *Machine[T]) transition(ctx T, target StateID) {
	if m.active == target {
		return
	}
	if node, ok := m.nodes[m.active]; ok {
		for _, action := range node.OnExit {
			action(ctx)
		}
	}
	m.active = target
	m.timeInState = 0
	for _, action := range m.nodes[target].OnEnter {
		action(ctx)
	}
}

// State returns the active StateID
func (m *Machine[T]) State() StateID {
	return m.active
}

// StateName returns the active node name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.active]; ok {
		return node.Name
	}
	return ""
}

func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
