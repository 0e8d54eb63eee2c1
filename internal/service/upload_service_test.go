package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/model"
)

type uploadFixture struct {
	svc         *UploadService
	files       *fakeFileStore
	cache       *fakeCache
	submissions *fakeSubmissionStore

	student model.Identity
	other   model.Identity

	draft model.Submission
}

func newUploadFixture() *uploadFixture {
	assignments := newFakeAssignmentStore()
	submissions := newFakeSubmissionStore(assignments)
	files := newFakeFileStore()
	cache := newFakeCache()
	guard := NewGuardService(assignments, submissions, files)

	cfg := &config.Config{
		TicketSecret:   "test-ticket-secret",
		TicketTTL:      5 * time.Minute,
		MaxUploadBytes: 25 * 1024 * 1024,
	}

	a := assignments.add(model.Assignment{
		ClassroomID: 1, Status: model.AssignmentStatusActive, MaxPoints: 100,
	})
	draft := submissions.add(model.Submission{
		AssignmentID: a.ID, StudentID: 1, Status: model.SubmissionStatusDraft,
	})

	return &uploadFixture{
		svc:         NewUploadService(cfg, guard, files, cache, zerolog.Nop()),
		files:       files,
		cache:       cache,
		submissions: submissions,
		student:     model.Identity{SubjectID: 1, ClassroomID: 1, Role: model.RoleStudent},
		other:       model.Identity{SubjectID: 2, ClassroomID: 1, Role: model.RoleStudent},
		draft:       draft,
	}
}

func pdfRequest() *model.CreateTicketRequest {
	return &model.CreateTicketRequest{
		FileName:    "essay.pdf",
		ContentType: "application/pdf",
		SizeBytes:   512 * 1024,
	}
}

func TestCreateTicketValidatesMeta(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *model.CreateTicketRequest
		wantErr error
	}{
		{"executable rejected", &model.CreateTicketRequest{
			FileName: "run.exe", ContentType: "application/x-msdownload", SizeBytes: 100,
		}, ErrUnsupportedFileType},
		{"oversize rejected", &model.CreateTicketRequest{
			FileName: "huge.zip", ContentType: "application/zip", SizeBytes: 26 * 1024 * 1024,
		}, ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.CreateTicket(ctx, &f.student, f.draft.ID, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTicketRequiresEditableSubmission(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	sub := f.draft
	sub.Status = model.SubmissionStatusSubmitted
	f.submissions.submissions[sub.ID] = sub

	if _, err := f.svc.CreateTicket(ctx, &f.student, sub.ID, pdfRequest()); !errors.Is(err, ErrSubmissionNotEditable) {
		t.Errorf("error = %v, want ErrSubmissionNotEditable", err)
	}
}

func TestCreateTicketForeignSubmissionDenied(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	if _, err := f.svc.CreateTicket(ctx, &f.other, f.draft.ID, pdfRequest()); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("error = %v, want ErrAccessDenied", err)
	}
}

func TestFinalizeRoundTrip(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	ticket, err := f.svc.CreateTicket(ctx, &f.student, f.draft.ID, pdfRequest())
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	file, err := f.svc.Finalize(ctx, &f.student, f.draft.ID, ticket.Ticket, "uploads/2026/essay.pdf")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if file.SubmissionID != f.draft.ID {
		t.Errorf("file bound to %s, want %s", file.SubmissionID, f.draft.ID)
	}
	if file.FileName != "essay.pdf" || file.ContentType != "application/pdf" {
		t.Errorf("file metadata drifted from the ticket: %+v", file)
	}
	if file.StoragePath != "uploads/2026/essay.pdf" {
		t.Errorf("storage path = %q", file.StoragePath)
	}
}

func TestFinalizeTicketIsSingleUse(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	ticket, err := f.svc.CreateTicket(ctx, &f.student, f.draft.ID, pdfRequest())
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if _, err := f.svc.Finalize(ctx, &f.student, f.draft.ID, ticket.Ticket, "uploads/a.pdf"); err != nil {
		t.Fatalf("first finalize: %v", err)
	}

	if _, err := f.svc.Finalize(ctx, &f.student, f.draft.ID, ticket.Ticket, "uploads/b.pdf"); !errors.Is(err, ErrInvalidTicket) {
		t.Errorf("replay error = %v, want ErrInvalidTicket", err)
	}
	if n, _ := f.files.CountBySubmission(ctx, f.draft.ID); n != 1 {
		t.Errorf("file rows = %d after replay attempt, want 1", n)
	}
}

func TestFinalizeRejectsGarbageTicket(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	if _, err := f.svc.Finalize(ctx, &f.student, f.draft.ID, "not-a-jwt", "uploads/x.pdf"); !errors.Is(err, ErrInvalidTicket) {
		t.Errorf("error = %v, want ErrInvalidTicket", err)
	}
}

func TestFinalizeRejectsBorrowedTicket(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	ticket, err := f.svc.CreateTicket(ctx, &f.student, f.draft.ID, pdfRequest())
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	// Another student redeeming a stolen ticket is denied outright.
	if _, err := f.svc.Finalize(ctx, &f.other, f.draft.ID, ticket.Ticket, "uploads/x.pdf"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("error = %v, want ErrAccessDenied", err)
	}

	// The denial must not have consumed the ticket.
	if _, err := f.svc.Finalize(ctx, &f.student, f.draft.ID, ticket.Ticket, "uploads/x.pdf"); err != nil {
		t.Errorf("owner finalize after failed theft: %v", err)
	}
}

func TestDeleteFileRequiresEditableSubmission(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	file := f.files.add(model.SubmissionFile{
		SubmissionID: f.draft.ID, FileName: "essay.pdf", StoragePath: "uploads/essay.pdf",
		SizeBytes: 100, ContentType: "application/pdf",
	})

	sub := f.draft
	sub.Status = model.SubmissionStatusGraded
	f.submissions.submissions[sub.ID] = sub

	if err := f.svc.Delete(ctx, &f.student, file.ID); !errors.Is(err, ErrSubmissionNotEditable) {
		t.Errorf("error = %v, want ErrSubmissionNotEditable", err)
	}
	if _, ok := f.files.files[file.ID]; !ok {
		t.Error("file row removed despite refusal")
	}
}

func TestDeleteForeignFileDenied(t *testing.T) {
	f := newUploadFixture()
	ctx := context.Background()

	file := f.files.add(model.SubmissionFile{
		SubmissionID: f.draft.ID, FileName: "essay.pdf", StoragePath: "uploads/essay.pdf",
		SizeBytes: 100, ContentType: "application/pdf",
	})

	if err := f.svc.Delete(ctx, &f.other, file.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("error = %v, want ErrAccessDenied", err)
	}
}
