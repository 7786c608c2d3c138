package core

import "testing"

type listener struct {
	name string
}

func TestEventFire(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("expected the event system to initialize")
	}
	defer EventSystemShutdown()

	if EventSystemInitialize() {
		t.Error("expected a second initialize to be rejected")
	}

	var order []string
	first, second := &listener{"first"}, &listener{"second"}
	EventRegister(EVENT_CODE_RESIZED, first, func(ctx EventContext) bool {
		order = append(order, "first")
		return false
	})
	EventRegister(EVENT_CODE_RESIZED, second, func(ctx EventContext) bool {
		se := ctx.Data.(*SystemEvent)
		if se.WindowWidth != 640 {
			t.Errorf("expected width 640, got %d", se.WindowWidth)
		}
		order = append(order, "second")
		return true
	})

	handled := EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480}})
	if !handled {
		t.Error("expected the event to be handled")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected [first second], got %v", order)
	}

	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("expected no handler for quit")
	}
}

func TestEventRegisterDuplicate(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	l := &listener{"l"}
	noop := func(EventContext) bool { return true }
	if !EventRegister(EVENT_CODE_APPLICATION_QUIT, l, noop) {
		t.Fatal("expected registration to succeed")
	}
	if EventRegister(EVENT_CODE_APPLICATION_QUIT, l, noop) {
		t.Error("expected duplicate registration to fail")
	}
	if !EventUnregister(EVENT_CODE_APPLICATION_QUIT, l) {
		t.Error("expected unregister to succeed")
	}
	if EventUnregister(EVENT_CODE_APPLICATION_QUIT, l) {
		t.Error("expected second unregister to fail")
	}
	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("expected no listeners after unregister")
	}
}

func TestEventNotInitialized(t *testing.T) {
	if EventRegister(EVENT_CODE_RESIZED, nil, func(EventContext) bool { return true }) {
		t.Error("expected registration to fail before initialize")
	}
	if EventFire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Error("expected fire to be a no-op before initialize")
	}
}
