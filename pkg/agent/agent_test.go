package agent

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
	"github.com/mckayn10/ai-chat-app/pkg/dialog"
	"github.com/mckayn10/ai-chat-app/pkg/llm"
	"github.com/mckayn10/ai-chat-app/pkg/providers/mock"
)

func newTestAgent(t *testing.T, client llm.Client) (*Agent, *contacts.MemoryStore) {
	t.Helper()
	store := contacts.NewMemoryStore()
	a := New(Options{
		Client: client,
		Store:  store,
		Retry:  llm.RetryConfig{MaxAttempts: 1},
	})
	return a, store
}

func seed(t *testing.T, store *contacts.MemoryStore, userID int64, first, last string) contacts.Contact {
	t.Helper()
	c, err := store.Create(context.Background(), userID, contacts.Input{FirstName: first, LastName: last})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

func TestListRoundTrip(t *testing.T) {
	client := mock.NewClient()
	client.Queue = []string{
		`{"action":"create","contact":{"firstName":"Ana","lastName":"Ruiz","email":"ana@example.com"},"confidence":0.9}`,
		`{"action":"list","confidence":0.95}`,
	}
	a, _ := newTestAgent(t, client)
	sess := NewSession(1)

	res := a.ProcessCommand(context.Background(), sess, "add Ana Ruiz with email ana@example.com")
	if !res.Success {
		t.Fatalf("create failed: %q", res.Message)
	}
	if !strings.Contains(res.Message, "Ana Ruiz") || !strings.Contains(res.Message, "ana@example.com") {
		t.Fatalf("expected name and email in confirmation, got %q", res.Message)
	}

	res = a.ProcessCommand(context.Background(), sess, "show all my contacts")
	if !res.Success {
		t.Fatalf("list failed: %q", res.Message)
	}
	if !strings.Contains(res.Message, "- Ana Ruiz (ana@example.com)") {
		t.Fatalf("expected bullet entry, got %q", res.Message)
	}
	list, ok := res.Data.([]contacts.Contact)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one contact in data, got %#v", res.Data)
	}
	if list[0].FirstName != "Ana" || list[0].LastName != "Ruiz" || list[0].Email != "ana@example.com" {
		t.Fatalf("round trip lost fields: %#v", list[0])
	}
}

func TestListEmpty(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"list","confidence":0.95}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if !res.Success {
		t.Fatalf("list failed: %q", res.Message)
	}
	if res.Message != "You don't have any contacts yet." {
		t.Fatalf("unexpected empty-list message: %q", res.Message)
	}
}

func TestLowConfidenceShortCircuits(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"delete","contactId":1,"confidence":0.3}`
	a, store := newTestAgent(t, client)
	c := seed(t, store, 1, "Ana", "Ruiz")

	res := a.ProcessCommand(context.Background(), NewSession(1), "hmm maybe remove something")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Message, "not very confident") {
		t.Fatalf("expected low-confidence message, got %q", res.Message)
	}
	list, _ := store.List(context.Background(), 1)
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("store mutated below threshold: %#v", list)
	}
}

// spyStore counts calls so tests can prove the store was never reached.
type spyStore struct {
	contacts.Store
	calls int
}

func (s *spyStore) List(ctx context.Context, userID int64) ([]contacts.Contact, error) {
	s.calls++
	return s.Store.List(ctx, userID)
}

func TestLowConfidenceNeverReachesStore(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"list","confidence":0.4}`
	spy := &spyStore{Store: contacts.NewMemoryStore()}
	a := New(Options{Client: client, Store: spy})

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if spy.calls != 0 {
		t.Fatalf("store invoked %d times below threshold", spy.calls)
	}
}

func TestConfidenceGateBoundary(t *testing.T) {
	// Exactly the threshold passes; the gate is strictly less-than.
	client := mock.NewClient()
	client.ResponseText = `{"action":"list","confidence":0.6}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if !res.Success {
		t.Fatalf("confidence 0.6 should pass the gate, got %q", res.Message)
	}
}

func TestSpanishCreateAskNameFlow(t *testing.T) {
	client := mock.NewClient()
	client.Queue = []string{
		`{"action":"create_ask_name","contact":{"firstName":"Juan","lastName":"García"},"confidence":0.9}`,
		`{"action":"create_with_name","contact":{"firstName":"Juan","lastName":"García"},"confidence":0.9}`,
	}
	a, store := newTestAgent(t, client)
	sess := NewSession(7)

	res := a.ProcessCommand(context.Background(), sess, "Crear un nuevo contacto para Juan García")
	if !res.Success {
		t.Fatalf("ask-name turn failed: %q", res.Message)
	}
	if res.Message != "¿Cuál es el nombre del contacto que te gustaría crear?" {
		t.Fatalf("expected Spanish ask-name prompt, got %q", res.Message)
	}
	if sess.State() != dialog.AwaitingName {
		t.Fatalf("expected AwaitingName, got %v", sess.State())
	}

	res = a.ProcessCommand(context.Background(), sess, "Juan García")
	if !res.Success {
		t.Fatalf("name turn failed: %q", res.Message)
	}
	if sess.State() != dialog.Idle {
		t.Fatalf("expected Idle after name turn, got %v", sess.State())
	}
	list, _ := store.List(context.Background(), 7)
	if len(list) != 1 || list[0].FullName() != "Juan García" {
		t.Fatalf("expected Juan García created, got %#v", list)
	}
}

func TestAwaitingNameClearedByUnrelatedTurn(t *testing.T) {
	client := mock.NewClient()
	client.Queue = []string{
		`{"action":"create_ask_name","confidence":0.9}`,
		`{"action":"list","confidence":0.95}`,
		`{"action":"list","confidence":0.95}`,
	}
	a, store := newTestAgent(t, client)
	sess := NewSession(1)

	a.ProcessCommand(context.Background(), sess, "add a new contact")
	res := a.ProcessCommand(context.Background(), sess, "actually just show my list")
	if res.Success {
		t.Fatalf("name-bearing turn without a name should fail, got %q", res.Message)
	}
	if !strings.Contains(res.Message, "couldn't understand the name") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if sess.State() != dialog.Idle {
		t.Fatalf("marker should be cleared, got %v", sess.State())
	}
	if list, _ := store.List(context.Background(), 1); len(list) != 0 {
		t.Fatalf("nothing should have been created: %#v", list)
	}

	// The turn after the failed completion dispatches normally again.
	res = a.ProcessCommand(context.Background(), sess, "show all my contacts")
	if !res.Success {
		t.Fatalf("follow-up list failed: %q", res.Message)
	}
}

func TestDeleteByID(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	c := seed(t, store, 1, "Ana", "Ruiz")
	client.ResponseText = `{"action":"delete","contactId":` + itoa(c.ID) + `,"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "delete that contact")
	if !res.Success {
		t.Fatalf("delete failed: %q", res.Message)
	}
	if res.Message != "Contact deleted successfully." {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if list, _ := store.List(context.Background(), 1); len(list) != 0 {
		t.Fatalf("contact not removed: %#v", list)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"delete","contactId":99,"confidence":0.9}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "delete entry 99")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "Couldn't find a contact with ID 99." {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestUpdateByID(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	c := seed(t, store, 1, "Ana", "Ruiz")
	client.ResponseText = `{"action":"update","contactId":` + itoa(c.ID) +
		`,"contact":{"email":"ana@example.com"},"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "set Ana's email")
	if !res.Success {
		t.Fatalf("update failed: %q", res.Message)
	}
	got, _ := store.List(context.Background(), 1)
	if got[0].Email != "ana@example.com" {
		t.Fatalf("email not applied: %#v", got[0])
	}
}

func TestUpdateByNameSingleMatch(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	seed(t, store, 1, "Juan", "García")
	client.ResponseText = `{"action":"update_by_name","contact":{"targetFirstName":"Juan",` +
		`"targetLastName":"García","updates":{"email":"juan@example.com"}},"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "Actualizar el correo de Juan García a juan@example.com")
	if !res.Success {
		t.Fatalf("update failed: %q", res.Message)
	}
	if res.Message != "Contacto actualizado: Juan García" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	got, _ := store.List(context.Background(), 1)
	if got[0].Email != "juan@example.com" {
		t.Fatalf("email not applied: %#v", got[0])
	}
}

func TestUpdateByNameNoMatch(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"update_by_name","contact":{"targetFirstName":"Nadie",` +
		`"updates":{"email":"x@example.com"}},"confidence":0.9}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "update Nadie's email")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "Couldn't find a contact named Nadie" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestUpdateByNameAmbiguous(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	seed(t, store, 1, "Juan", "García")
	seed(t, store, 1, "Juan", "Pérez")
	client.ResponseText = `{"action":"update_by_name","contact":{"targetFirstName":"Juan",` +
		`"updates":{"email":"x@example.com"}},"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "update Juan's email")
	if res.Success {
		t.Fatalf("ambiguous lookup must not mutate")
	}
	if !strings.Contains(res.Message, "Juan García") || !strings.Contains(res.Message, "Juan Pérez") {
		t.Fatalf("expected both candidates listed, got %q", res.Message)
	}
	got, _ := store.List(context.Background(), 1)
	for _, c := range got {
		if c.Email != "" {
			t.Fatalf("store mutated on ambiguity: %#v", c)
		}
	}
}

func TestUpdateByNameLastNameDisambiguates(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	seed(t, store, 1, "Juan", "García")
	target := seed(t, store, 1, "Juan", "Pérez")
	client.ResponseText = `{"action":"update_by_name","contact":{"targetFirstName":"Juan",` +
		`"targetLastName":"Pérez","updates":{"phone":"+34 600 000 000"}},"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "update Juan Perez's phone")
	if !res.Success {
		t.Fatalf("update failed: %q", res.Message)
	}
	got, _ := store.List(context.Background(), 1)
	for _, c := range got {
		if c.ID == target.ID && c.Phone != "+34 600 000 000" {
			t.Fatalf("phone not applied: %#v", c)
		}
		if c.ID != target.ID && c.Phone != "" {
			t.Fatalf("wrong row mutated: %#v", c)
		}
	}
}

func TestCompletionFailureIsGenericError(t *testing.T) {
	client := mock.NewClient()
	client.Err = errors.New("upstream down")
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Message, "encountered an error") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestUnparseableCompletion(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = "Sure! I can help you manage contacts."
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Message, "encountered an error") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestFencedCompletionParses(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = "```json\n{\"action\":\"list\",\"confidence\":0.9}\n```"
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "show all my contacts")
	if !res.Success {
		t.Fatalf("fenced payload should parse, got %q", res.Message)
	}
}

func TestInvalidIntentMessageMatchesVariant(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"delete","confidence":0.9}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "delete the thing")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Message, "provide the contact ID") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestUnknownActionFallsBackToHelp(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"unknown","confidence":0.9}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "what's the weather like")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Message, "You can try:") {
		t.Fatalf("expected help text, got %q", res.Message)
	}
}

func TestUnknownActionKeepsModelMessage(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"unknown","confidence":0.9,"responseMessage":"I only manage contacts."}`
	a, _ := newTestAgent(t, client)

	res := a.ProcessCommand(context.Background(), NewSession(1), "tell me a joke")
	if res.Message != "I only manage contacts." {
		t.Fatalf("expected model message, got %q", res.Message)
	}
}

func TestBusySessionRejectsOverlap(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"list","confidence":0.9}`
	a, _ := newTestAgent(t, client)
	sess := NewSession(1)

	if !sess.begin() {
		t.Fatalf("fresh session should accept a turn")
	}
	res := a.ProcessCommand(context.Background(), sess, "show all my contacts")
	if res.Success {
		t.Fatalf("expected busy rejection")
	}
	if !strings.Contains(res.Message, "previous request") {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	sess.end()

	res = a.ProcessCommand(context.Background(), sess, "show all my contacts")
	if !res.Success {
		t.Fatalf("session should accept turns again, got %q", res.Message)
	}
}

func TestSessionRegistryReusesPerUser(t *testing.T) {
	reg := NewSessionRegistry()
	a := reg.Get(1)
	if got := reg.Get(1); got != a {
		t.Fatalf("same user must get the same session")
	}
	if got := reg.Get(2); got == a {
		t.Fatalf("distinct users must not share a session")
	}
	reg.Reset(1)
	if got := reg.Get(1); got == a {
		t.Fatalf("reset must drop the old session")
	}
}

func TestPerUserIsolation(t *testing.T) {
	client := mock.NewClient()
	client.ResponseText = `{"action":"list","confidence":0.9}`
	a, store := newTestAgent(t, client)
	seed(t, store, 1, "Ana", "Ruiz")

	res := a.ProcessCommand(context.Background(), NewSession(2), "show all my contacts")
	if !res.Success {
		t.Fatalf("list failed: %q", res.Message)
	}
	if res.Message != "You don't have any contacts yet." {
		t.Fatalf("user 2 must not see user 1's contacts: %q", res.Message)
	}
}

func TestMergeUpdatesExplicitWins(t *testing.T) {
	client := mock.NewClient()
	a, store := newTestAgent(t, client)
	c := seed(t, store, 1, "Ana", "Ruiz")
	client.ResponseText = `{"action":"update","contactId":` + itoa(c.ID) +
		`,"contact":{"email":"loose@example.com","updates":{"email":"explicit@example.com"}},"confidence":0.9}`

	res := a.ProcessCommand(context.Background(), NewSession(1), "fix Ana's email")
	if !res.Success {
		t.Fatalf("update failed: %q", res.Message)
	}
	got, _ := store.List(context.Background(), 1)
	if got[0].Email != "explicit@example.com" {
		t.Fatalf("explicit update should win, got %q", got[0].Email)
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
