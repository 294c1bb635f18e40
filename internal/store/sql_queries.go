package store

import (
	"bidhouse/models"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, first_name, last_name, password_hash, image_filename)
    VALUES ($1, $2, $3, $4, NULL)
    RETURNING id;`

	getUserByID = `SELECT id, email, first_name, last_name, password_hash, COALESCE(image_filename, '')
    FROM users
    WHERE id = $1;`

	getUserByEmail = `SELECT id, email, first_name, last_name, password_hash, COALESCE(image_filename, '')
    FROM users
    WHERE email = $1;`

	saveSession = `INSERT INTO sessions (token, user_id)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, created_at = NOW();`

	getSessionByToken = `SELECT token, user_id, created_at
    FROM sessions
    WHERE token = $1;`

	deleteSessionByToken = `DELETE FROM sessions WHERE token = $1;`

	deleteSessionByUser = `DELETE FROM sessions WHERE user_id = $1;`

	getCategories = `SELECT id, name FROM categories ORDER BY id;`

	categoryExists = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1);`

	createAuction = `INSERT INTO auctions (seller_id, title, description, category_id, end_date, reserve)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id;`

	getAuctionByID = `SELECT id, seller_id, title, description, category_id, end_date, reserve, COALESCE(image_filename, '')
    FROM auctions
    WHERE id = $1;`

	// lockAuction pins the auction row for the duration of a
	// check-then-write sequence (bid insert, update, delete).
	lockAuction = `SELECT seller_id, end_date
    FROM auctions
    WHERE id = $1
    FOR UPDATE;`

	deleteAuction = `DELETE FROM auctions WHERE id = $1;`

	countBids = `SELECT count(*) FROM bids WHERE auction_id = $1;`

	highestBid = `SELECT MAX(amount) FROM bids WHERE auction_id = $1;`

	insertBid = `INSERT INTO bids (auction_id, bidder_id, amount)
    VALUES ($1, $2, $3)
    RETURNING id, created_at;`

	// listBids orders by amount, then timestamp, then id, all descending:
	// the id tail makes the order total even when two bids tie on both
	// amount and timestamp.
	listBids = `SELECT b.bidder_id, b.amount, u.first_name, u.last_name, b.created_at
    FROM bids b
    JOIN users u ON u.id = b.bidder_id
    WHERE b.auction_id = $1
    ORDER BY b.amount DESC, b.created_at DESC, b.id DESC;`

	auctionHasBidder = `SELECT EXISTS (SELECT 1 FROM bids WHERE auction_id = $1 AND bidder_id = $2);`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListAuctionsQuery assembles the listing query. The seller name and
// the bid aggregates come out of the same statement as the auction row, so
// every summary reflects one snapshot.
//
// All caller-supplied values are bound parameters; the ORDER BY text only
// ever comes from the sort-key enumeration.
func buildListAuctionsQuery(filter models.ListFilter, sort models.SortOrder, page models.Page) (string, []any, error) {
	query := psql.Select(
		"a.id",
		"a.title",
		"a.category_id",
		"a.seller_id",
		"u.first_name",
		"u.last_name",
		"a.reserve",
		"a.end_date",
		"COUNT(b.id) AS num_bids",
		"MAX(b.amount) AS highest_bid",
	).
		From("auctions a").
		Join("users u ON u.id = a.seller_id").
		LeftJoin("bids b ON b.auction_id = a.id").
		GroupBy("a.id", "u.first_name", "u.last_name")

	if filter.SellerID != nil {
		query = query.Where(sq.Eq{"a.seller_id": *filter.SellerID})
	}
	if filter.CategoryID != nil {
		query = query.Where(sq.Eq{"a.category_id": *filter.CategoryID})
	}
	if filter.TextQuery != "" {
		pattern := "%" + filter.TextQuery + "%"
		query = query.Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.description": pattern},
		})
	}

	query = query.OrderBy(orderClauses(sort)...)

	if page.StartIndex != nil || page.Count != nil {
		var start uint64
		if page.StartIndex != nil {
			start = *page.StartIndex
		}
		query = query.Offset(start)
		if page.Count != nil {
			query = query.Limit(*page.Count)
		}
	}

	return query.ToSql()
}

// orderClauses maps a sort key to ORDER BY clauses. The highest-bid sorts
// push auctions without bids after every auction that has one, in both
// directions; the id tail keeps the order deterministic.
func orderClauses(sort models.SortOrder) []string {
	var primary string
	switch sort {
	case models.SortAlphabeticalAsc:
		primary = "a.title ASC"
	case models.SortAlphabeticalDesc:
		primary = "a.title DESC"
	case models.SortClosingLast:
		primary = "a.end_date DESC"
	case models.SortReserveAsc:
		primary = "a.reserve ASC"
	case models.SortReserveDesc:
		primary = "a.reserve DESC"
	case models.SortBidsAsc:
		primary = "MAX(b.amount) ASC NULLS LAST"
	case models.SortBidsDesc:
		primary = "MAX(b.amount) DESC NULLS LAST"
	default: // SortDefault, SortClosingSoon
		primary = "a.end_date ASC"
	}

	return []string{primary, "a.id ASC"}
}

// buildAuctionDetailQuery assembles the single-auction projection: the
// full row plus seller name and bid aggregates, one statement, one
// snapshot.
func buildAuctionDetailQuery(auctionID int64) (string, []any, error) {
	return psql.Select(
		"a.id",
		"a.title",
		"a.description",
		"a.category_id",
		"a.seller_id",
		"u.first_name",
		"u.last_name",
		"a.reserve",
		"a.end_date",
		"COUNT(b.id) AS num_bids",
		"MAX(b.amount) AS highest_bid",
	).
		From("auctions a").
		Join("users u ON u.id = a.seller_id").
		LeftJoin("bids b ON b.auction_id = a.id").
		Where(sq.Eq{"a.id": auctionID}).
		GroupBy("a.id", "u.first_name", "u.last_name").
		ToSql()
}

// buildUpdateAuctionQuery builds a partial UPDATE from the non-nil patch
// fields. Returns ok=false when the patch is empty and no statement is
// needed.
func buildUpdateAuctionQuery(auctionID int64, patch models.AuctionPatch) (string, []any, bool, error) {
	if patch.Empty() {
		return "", nil, false, nil
	}

	update := psql.Update("auctions")

	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		update = update.Set("description", *patch.Description)
	}
	if patch.CategoryID != nil {
		update = update.Set("category_id", *patch.CategoryID)
	}
	if patch.EndDate != nil {
		update = update.Set("end_date", *patch.EndDate)
	}
	if patch.Reserve != nil {
		update = update.Set("reserve", *patch.Reserve)
	}

	query, args, err := update.Where(sq.Eq{"id": auctionID}).ToSql()
	return query, args, true, err
}

// buildUpdateUserQuery builds a partial UPDATE from the non-nil patch
// fields. passwordHash, when non-empty, replaces the stored hash; the
// caller has already verified the current password.
func buildUpdateUserQuery(userID int64, patch models.UserPatch, passwordHash string) (string, []any, bool, error) {
	update := psql.Update("users")
	touched := false

	if patch.Email != nil {
		update = update.Set("email", *patch.Email)
		touched = true
	}
	if patch.FirstName != nil {
		update = update.Set("first_name", *patch.FirstName)
		touched = true
	}
	if patch.LastName != nil {
		update = update.Set("last_name", *patch.LastName)
		touched = true
	}
	if passwordHash != "" {
		update = update.Set("password_hash", passwordHash)
		touched = true
	}

	if !touched {
		return "", nil, false, nil
	}

	query, args, err := update.Where(sq.Eq{"id": userID}).ToSql()
	return query, args, true, err
}
