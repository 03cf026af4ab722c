package groups_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	groupsfeature "github.com/studysync/studysync/internal/app/features/groups"
	"github.com/studysync/studysync/internal/app/system/auth"
	"github.com/studysync/studysync/internal/app/system/indexes"
	"github.com/studysync/studysync/internal/domain/models"
	"github.com/studysync/studysync/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*groupsfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return groupsfeature.NewHandler(db, 0, logger), testutil.NewFixtures(t, db)
}

func sessionFor(u models.User) *auth.SessionUser {
	return testutil.SessionUserFor(u.ID, u.DisplayName, u.Email, u.Role)
}

func createGroup(t *testing.T, h *groupsfeature.Handler, as *auth.SessionUser, name string) models.Group {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/create",
		map[string]string{"groupName": name}, as))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var data struct {
		Group models.Group `json:"group"`
	}
	testutil.DecodeEnvelope(t, rec, &data)
	return data.Group
}

func TestHandleCreate(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	g := createGroup(t, h, sessionFor(creator), "Algorithms")

	if g.Name != "Algorithms" {
		t.Errorf("Name = %q", g.Name)
	}
	if g.JoinCode == "" || g.InviteToken == "" {
		t.Error("expected join code and invite token")
	}
	if g.CreatedBy != creator.ID {
		t.Errorf("CreatedBy = %v, want %v", g.CreatedBy, creator.ID)
	}

	// The creator is a member immediately.
	ok, err := h.Members.Exists(ctx, g.ID, creator.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("creator should be a member of the new group")
	}
}

func TestHandleCreate_RequiresName(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/create",
		map[string]string{"groupName": "<script>x</script>"}, sessionFor(u)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleJoin_ByCodeAndToken(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	joiner := fixtures.CreateUser(ctx, "Grace Hopper", "grace@example.com", "student")
	g := createGroup(t, h, sessionFor(creator), "Algorithms")

	// Join by code.
	rec := httptest.NewRecorder()
	h.HandleJoin(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/join",
		map[string]string{"joinCode": g.JoinCode}, sessionFor(joiner)))
	if rec.Code != http.StatusOK {
		t.Fatalf("join by code: status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	// Joining again is idempotent: success, still one membership row.
	rec = httptest.NewRecorder()
	h.HandleJoin(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/join",
		map[string]string{"joinCode": g.JoinCode}, sessionFor(joiner)))
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat join: status = %d", rec.Code)
	}
	n, err := h.Members.CountForGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("CountForGroup failed: %v", err)
	}
	if n != 2 {
		t.Errorf("member count = %d, want 2", n)
	}

	// A third user joins by invite token.
	third := fixtures.CreateUser(ctx, "Alan Turing", "alan@example.com", "student")
	rec = httptest.NewRecorder()
	h.HandleJoin(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/join",
		map[string]string{"inviteToken": g.InviteToken}, sessionFor(third)))
	if rec.Code != http.StatusOK {
		t.Fatalf("join by token: status = %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleJoin_BadInput(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	joiner := fixtures.CreateUser(ctx, "Grace Hopper", "grace@example.com", "student")
	g := createGroup(t, h, sessionFor(creator), "Algorithms")

	// Exactly one identifier is required: neither and both are rejected.
	for _, body := range []map[string]string{
		{},
		{"joinCode": g.JoinCode, "inviteToken": g.InviteToken},
	} {
		rec := httptest.NewRecorder()
		h.HandleJoin(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/join", body, sessionFor(joiner)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, rec.Code)
		}
	}

	// An unknown code is a 404, not a validation error.
	rec := httptest.NewRecorder()
	h.HandleJoin(rec, testutil.SignedInRequest(t, http.MethodPost, "/groups/join",
		map[string]string{"joinCode": "ZZZZZZ"}, sessionFor(joiner)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown code: status = %d, want 404", rec.Code)
	}
}

func TestHandleMyGroups(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")

	// No memberships yet: empty list, not an error.
	rec := httptest.NewRecorder()
	h.HandleMyGroups(rec, testutil.SignedInRequest(t, http.MethodGet, "/groups/my", nil, sessionFor(u)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data struct {
		Groups []models.Group `json:"groups"`
	}
	testutil.DecodeEnvelope(t, rec, &data)
	if len(data.Groups) != 0 {
		t.Errorf("got %d groups, want 0", len(data.Groups))
	}

	first := createGroup(t, h, sessionFor(u), "First")
	second := createGroup(t, h, sessionFor(u), "Second")

	rec = httptest.NewRecorder()
	h.HandleMyGroups(rec, testutil.SignedInRequest(t, http.MethodGet, "/groups/my", nil, sessionFor(u)))
	testutil.DecodeEnvelope(t, rec, &data)
	if len(data.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(data.Groups))
	}
	if data.Groups[0].ID != first.ID || data.Groups[1].ID != second.ID {
		t.Errorf("order = [%s %s], want [First Second]", data.Groups[0].Name, data.Groups[1].Name)
	}
}

func TestMembershipGate(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	outsider := fixtures.CreateUser(ctx, "Mallory", "mallory@example.com", "student")
	g := createGroup(t, h, sessionFor(creator), "Algorithms")

	// A non-member is rejected with 403 from every workspace view.
	r := testutil.SignedInRequest(t, http.MethodGet, "/groups/"+g.ID.Hex(), nil, sessionFor(outsider))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleView(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider view: status = %d, want 403", rec.Code)
	}

	r = testutil.SignedInRequest(t, http.MethodGet, "/groups/"+g.ID.Hex()+"/messages", nil, sessionFor(outsider))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleListMessages(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider messages: status = %d, want 403", rec.Code)
	}

	// A missing group is 404 for everyone.
	missing := "bbbbbbbbbbbbbbbbbbbbbbbb"
	r = testutil.SignedInRequest(t, http.MethodGet, "/groups/"+missing, nil, sessionFor(creator))
	r = testutil.WithChiURLParam(r, "groupId", missing)
	rec = httptest.NewRecorder()
	h.HandleView(rec, r)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing group: status = %d, want 404", rec.Code)
	}

	// A member sees the detail plus the member count.
	r = testutil.SignedInRequest(t, http.MethodGet, "/groups/"+g.ID.Hex(), nil, sessionFor(creator))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleView(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("member view: status = %d", rec.Code)
	}
	var data struct {
		Group       models.Group `json:"group"`
		MemberCount int64        `json:"memberCount"`
	}
	testutil.DecodeEnvelope(t, rec, &data)
	if data.Group.ID != g.ID || data.MemberCount != 1 {
		t.Errorf("view = %+v", data)
	}
}

func TestMessages_PostAndList(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	b := fixtures.CreateUser(ctx, "Grace Hopper", "grace@example.com", "student")
	g := createGroup(t, h, sessionFor(a), "Algorithms")
	fixtures.CreateMembership(ctx, g.ID, b.ID)

	// A posts; the sender name is denormalized on the message.
	r := testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/messages",
		map[string]string{"text": "hi, meeting at <b>5pm</b>"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandlePostMessage(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	// B lists and sees A's message, with the markup stripped.
	r = testutil.SignedInRequest(t, http.MethodGet, "/groups/"+g.ID.Hex()+"/messages", nil, sessionFor(b))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleListMessages(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var data struct {
		Messages []models.Message `json:"messages"`
	}
	testutil.DecodeEnvelope(t, rec, &data)
	if len(data.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(data.Messages))
	}
	m := data.Messages[0]
	if m.Text != "hi, meeting at 5pm" {
		t.Errorf("Text = %q", m.Text)
	}
	if m.SenderName != "Ada Lovelace" || m.SenderID != a.ID {
		t.Errorf("sender = %q/%v", m.SenderName, m.SenderID)
	}
}

func TestMessages_EmptyAfterSanitize(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	g := createGroup(t, h, sessionFor(a), "Algorithms")

	r := testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/messages",
		map[string]string{"text": "<script>alert(1)</script>"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandlePostMessage(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestResources_AddAndList(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	g := createGroup(t, h, sessionFor(a), "Algorithms")

	// Type is inferred from the URL when the caller leaves it blank.
	r := testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/resources",
		map[string]string{"title": "Lecture 3", "url": "https://youtu.be/abc123"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddResource(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var added struct {
		Resource models.Resource `json:"resource"`
	}
	testutil.DecodeEnvelope(t, rec, &added)
	if added.Resource.Type != models.ResourceTypeYouTube {
		t.Errorf("Type = %q, want youtube", added.Resource.Type)
	}

	// An explicit type wins over inference.
	r = testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/resources",
		map[string]string{"title": "Notes", "url": "https://youtu.be/xyz", "type": "notes"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleAddResource(rec, r)
	testutil.DecodeEnvelope(t, rec, &added)
	if added.Resource.Type != models.ResourceTypeNotes {
		t.Errorf("Type = %q, want notes", added.Resource.Type)
	}

	// Missing title or URL is rejected.
	r = testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/resources",
		map[string]string{"title": "No URL"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleAddResource(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing url: status = %d, want 400", rec.Code)
	}

	r = testutil.SignedInRequest(t, http.MethodGet, "/groups/"+g.ID.Hex()+"/resources", nil, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleListResources(rec, r)
	var data struct {
		Resources []models.Resource `json:"resources"`
	}
	testutil.DecodeEnvelope(t, rec, &data)
	if len(data.Resources) != 2 {
		t.Errorf("got %d resources, want 2", len(data.Resources))
	}
}

func TestTasks_AddToggleList(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "student")
	b := fixtures.CreateUser(ctx, "Grace Hopper", "grace@example.com", "student")
	g := createGroup(t, h, sessionFor(a), "Algorithms")
	fixtures.CreateMembership(ctx, g.ID, b.ID)

	r := testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/tasks",
		map[string]string{"title": "Read chapter 4", "dueDate": "2026-09-15"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddTask(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var added struct {
		Task models.Task `json:"task"`
	}
	testutil.DecodeEnvelope(t, rec, &added)
	if added.Task.Status != models.TaskStatusPending {
		t.Errorf("Status = %q, want pending", added.Task.Status)
	}
	if added.Task.DueDate == nil {
		t.Error("expected a due date")
	}

	// Any member may flip the status, not just the assigner.
	taskID := added.Task.ID.Hex()
	r = testutil.SignedInRequest(t, http.MethodPatch, "/groups/"+g.ID.Hex()+"/tasks/"+taskID,
		map[string]string{"status": "completed"}, sessionFor(b))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	r = testutil.WithChiURLParam(r, "taskId", taskID)
	rec = httptest.NewRecorder()
	h.HandleSetTaskStatus(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var toggled struct {
		Task models.Task `json:"task"`
	}
	testutil.DecodeEnvelope(t, rec, &toggled)
	if toggled.Task.Status != models.TaskStatusCompleted {
		t.Errorf("Status = %q, want completed", toggled.Task.Status)
	}

	// Unknown status values are rejected before touching the store.
	r = testutil.SignedInRequest(t, http.MethodPatch, "/groups/"+g.ID.Hex()+"/tasks/"+taskID,
		map[string]string{"status": "done"}, sessionFor(b))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	r = testutil.WithChiURLParam(r, "taskId", taskID)
	rec = httptest.NewRecorder()
	h.HandleSetTaskStatus(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status value: status = %d, want 400", rec.Code)
	}

	// A bad due date is rejected.
	r = testutil.SignedInRequest(t, http.MethodPost, "/groups/"+g.ID.Hex()+"/tasks",
		map[string]string{"title": "Bad date", "dueDate": "next tuesday"}, sessionFor(a))
	r = testutil.WithChiURLParam(r, "groupId", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleAddTask(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad due date: status = %d, want 400", rec.Code)
	}
}
