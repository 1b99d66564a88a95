package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
)

type fakeSender struct {
	codes     map[string]string
	passwords map[string]string
	fail      bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{codes: map[string]string{}, passwords: map[string]string{}}
}

func (f *fakeSender) SendVerificationCode(to, code string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.codes[to] = code
	return nil
}

func (f *fakeSender) SendNewPassword(to, password string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.passwords[to] = password
	return nil
}

func TestHandleVerificationEmail(t *testing.T) {
	sender := newFakeSender()
	h := NewEmailTaskHandler(sender)

	task, err := NewVerificationEmailTask("ana@x.com", "123456")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TypeVerificationEmail {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	if err := h.HandleVerificationEmail(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sender.codes["ana@x.com"] != "123456" {
		t.Fatalf("code not delivered: %+v", sender.codes)
	}
}

func TestHandleNewPasswordEmail(t *testing.T) {
	sender := newFakeSender()
	h := NewEmailTaskHandler(sender)

	task, err := NewPasswordEmailTask("ana@x.com", "Xk2mPq9srT")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TypeNewPasswordEmail {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	if err := h.HandleNewPasswordEmail(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sender.passwords["ana@x.com"] != "Xk2mPq9srT" {
		t.Fatalf("password not delivered: %+v", sender.passwords)
	}
}

func TestHandlerPropagatesSenderFailure(t *testing.T) {
	sender := newFakeSender()
	sender.fail = true
	h := NewEmailTaskHandler(sender)

	task, err := NewVerificationEmailTask("ana@x.com", "123456")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.HandleVerificationEmail(context.Background(), task); err == nil {
		t.Fatal("expected delivery error to propagate for retry")
	}
}

func TestHandlerRejectsMalformedPayload(t *testing.T) {
	h := NewEmailTaskHandler(newFakeSender())

	task := asynq.NewTask(TypeVerificationEmail, []byte("{not json"))
	if err := h.HandleVerificationEmail(context.Background(), task); err == nil {
		t.Fatal("expected payload error")
	}
}
