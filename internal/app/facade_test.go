package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
	testhelpers "github.com/anrodrig/comanda/internal/test"
	"github.com/anrodrig/comanda/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type publisherStub struct {
	created int
	changed int
}

func (p *publisherStub) OrderCreated(ctx context.Context, order *model.Order) error {
	p.created++
	return nil
}

func (p *publisherStub) OrderStatusChanged(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	p.changed++
	return nil
}

type dictionaryStub struct{}

func (d *dictionaryStub) Lookup(ctx context.Context, word string) (*model.DictionaryEntry, error) {
	return nil, errors.New("unexpected dictionary lookup")
}

type llmStub struct {
	gotWordA string
	gotWordB string
	answer   bool
	err      error
}

func (l *llmStub) AreSynonyms(ctx context.Context, wordA, defA, wordB, defB string) (bool, error) {
	l.gotWordA, l.gotWordB = wordA, wordB
	return l.answer, l.err
}

type facadeFixture struct {
	facade *ComandaFacade
	users  *testhelpers.UserRepositoryStub
	orders *testhelpers.OrderRepositoryStub
	words  *testhelpers.WordRepositoryStub
	llm    *llmStub
}

func newFacadeFixture() *facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	menu := &testhelpers.MenuRepositoryStub{Prices: map[int64]float64{1: 5.00}}
	words := testhelpers.NewWordRepositoryStub()
	reports := &testhelpers.ReportRepositoryStub{}
	llm := &llmStub{}

	facade := NewComandaFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		usecase.NewMenuUseCase(menu, users),
		usecase.NewOrderUseCase(orders, menu, users, &publisherStub{}, discardLogger()),
		usecase.NewVocabularyUseCase(words, &dictionaryStub{}),
		usecase.NewReportUseCase(reports, users),
		llm,
	)
	return &facadeFixture{facade: facade, users: users, orders: orders, words: words, llm: llm}
}

func TestFacadeRegisterAndParseToken(t *testing.T) {
	f := newFacadeFixture()

	user, token, err := f.facade.Register(context.Background(), " User@Example.com ", "secret", "Ana", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if token == "" {
		t.Fatal("expected issued token")
	}

	id, err := f.facade.ParseToken(token)
	if err != nil || id != user.ID {
		t.Fatalf("expected token to resolve to user %d, got %d (%v)", user.ID, id, err)
	}
}

func TestFacadeSubmitOrderDelegates(t *testing.T) {
	f := newFacadeFixture()
	user := f.users.Add(&model.User{Email: "u@example.com"})

	order, err := f.facade.SubmitOrder(context.Background(), model.OrderSubmission{
		Local:       "centro",
		ScheduledAt: time.Now().Add(time.Hour),
		UserID:      user.ID,
		Items:       []model.OrderItemRequest{{MenuItemID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total != 10.00 {
		t.Fatalf("expected total 10.00, got %v", order.Total)
	}
	if len(f.orders.CreatedDrafts) != 1 {
		t.Fatalf("expected one persisted draft, got %d", len(f.orders.CreatedDrafts))
	}
}

func TestFacadeCompareDefinitions(t *testing.T) {
	f := newFacadeFixture()
	f.llm.answer = true

	big := &model.Word{ID: 1, Word: "big", Definition: "of great size"}
	large := &model.Word{ID: 2, Word: "large", Definition: "of considerable size"}

	match, err := f.facade.CompareDefinitions(context.Background(), big, large)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Fatal("expected a synonym match")
	}
	if f.llm.gotWordA != "big" || f.llm.gotWordB != "large" {
		t.Fatalf("words not forwarded to the model: %q %q", f.llm.gotWordA, f.llm.gotWordB)
	}
}

func TestFacadeLinkSynonymsRecordsEdge(t *testing.T) {
	f := newFacadeFixture()
	big := f.words.Add(&model.Word{Word: "big"})
	large := f.words.Add(&model.Word{Word: "large"})

	if err := f.facade.LinkSynonyms(context.Background(), big, large); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.words.Links) != 1 {
		t.Fatalf("expected one recorded link, got %d", len(f.words.Links))
	}
}
