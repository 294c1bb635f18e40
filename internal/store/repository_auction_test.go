package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"bidhouse/models"
)

func newTestAuctionRepo(t *testing.T) (*auctionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	tdb, mock, db := newTestDB(t)
	repo := &auctionRepository{
		db:     tdb,
		logger: tdb.logger,
	}
	return repo, mock, db
}

func TestCreateAuction_Success(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	draft := models.AuctionDraft{
		Title:       "vintage radio",
		Description: "valve era, working",
		CategoryID:  3,
		EndDate:     time.Now().Add(48 * time.Hour),
		Reserve:     50,
	}

	mock.ExpectQuery("INSERT INTO auctions").
		WithArgs(int64(10), draft.Title, draft.Description, draft.CategoryID, draft.EndDate, draft.Reserve).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	auctionID, err := repo.CreateAuction(context.Background(), draft, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auctionID != 42 {
		t.Errorf("expected auction id 42, got %d", auctionID)
	}
}

func TestGetAuctionByID_NotFound(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, seller_id").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAuctionByID(context.Background(), 404)
	if !errors.Is(err, ErrAuctionNotFound) {
		t.Fatalf("expected ErrAuctionNotFound, got %v", err)
	}
}

func TestGetAuctionDetail_NoBidsHasNilHighest(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	endDate := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "category_id", "seller_id",
		"first_name", "last_name", "reserve", "end_date", "num_bids", "highest_bid",
	}).AddRow(1, "vintage radio", "valve era", 3, 10, "Sam", "Seller", 50, endDate, 0, nil)

	mock.ExpectQuery("SELECT a.id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	detail, err := repo.GetAuctionDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.HighestBid != nil {
		t.Errorf("expected nil highest bid, got %d", *detail.HighestBid)
	}
	if detail.NumBids != 0 || detail.SellerFirstName != "Sam" {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestUpdateAuction_BlockedByExistingBid(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	title := "new title"
	patch := models.AuctionPatch{Title: &title}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seller_id, end_date").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seller_id", "end_date"}).AddRow(10, time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.UpdateAuction(context.Background(), 1, patch)
	if !errors.Is(err, ErrAuctionHasBids) {
		t.Fatalf("expected ErrAuctionHasBids, got %v", err)
	}
}

func TestUpdateAuction_Success(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	title := "new title"
	patch := models.AuctionPatch{Title: &title}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seller_id, end_date").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seller_id", "end_date"}).AddRow(10, time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE auctions SET title").
		WithArgs(title, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	changed, err := repo.UpdateAuction(context.Background(), 1, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected a reported change")
	}
}

func TestUpdateAuction_EmptyPatchIsNoOp(t *testing.T) {
	repo, _, db := newTestAuctionRepo(t)
	defer db.Close()

	changed, err := repo.UpdateAuction(context.Background(), 1, models.AuctionPatch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("empty patch must not report a change")
	}
}

func TestDeleteAuction_Success(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seller_id, end_date").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seller_id", "end_date"}).AddRow(10, time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM auctions").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteAuction(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteAuction_BlockedByExistingBid(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seller_id, end_date").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seller_id", "end_date"}).AddRow(10, time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.DeleteAuction(context.Background(), 1)
	if !errors.Is(err, ErrAuctionHasBids) {
		t.Fatalf("expected ErrAuctionHasBids, got %v", err)
	}
}

func TestListAuctions_ScansSummaries(t *testing.T) {
	repo, mock, db := newTestAuctionRepo(t)
	defer db.Close()

	endDate := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "title", "category_id", "seller_id",
		"first_name", "last_name", "reserve", "end_date", "num_bids", "highest_bid",
	}).
		AddRow(1, "vintage radio", 3, 10, "Sam", "Seller", 50, endDate, 2, 600).
		AddRow(2, "empty lot", 3, 11, "Tess", "Trader", 1, endDate, 0, nil)

	mock.ExpectQuery("SELECT a.id").
		WillReturnRows(rows)

	summaries, err := repo.ListAuctions(context.Background(), models.ListFilter{}, models.SortDefault, models.Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].HighestBid == nil || *summaries[0].HighestBid != 600 {
		t.Errorf("expected highest bid 600 on first row, got %v", summaries[0].HighestBid)
	}
	if summaries[1].HighestBid != nil {
		t.Errorf("expected nil highest bid on bid-less row, got %d", *summaries[1].HighestBid)
	}
}
