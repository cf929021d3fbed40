package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"packlist/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  provider TEXT NOT NULL,
  sourceId TEXT NOT NULL,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'parsed',
  rawRef TEXT NOT NULL,
  receivedAt TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(provider, sourceId)
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  orderId TEXT NOT NULL,
  style TEXT NOT NULL,
  colour TEXT NOT NULL,
  supplierProductCode TEXT NOT NULL,
  itemClassification TEXT NOT NULL,
  supplierName TEXT NOT NULL,
  todayDate TEXT NOT NULL,
  collection TEXT NOT NULL,
  colourSku TEXT NOT NULL,
  styleMerchSeason TEXT NOT NULL,
  batch TEXT NOT NULL,
  sku TEXT NOT NULL,
  barcode TEXT NOT NULL,
  washingCode TEXT NOT NULL DEFAULT '',
  priceEur TEXT NOT NULL DEFAULT '',
  priceBgn TEXT NOT NULL DEFAULT '',
  priceBam TEXT NOT NULL DEFAULT '',
  pricePln TEXT NOT NULL DEFAULT '',
  priceRon TEXT NOT NULL DEFAULT '',
  priceCzk TEXT NOT NULL DEFAULT '',
  priceMkd TEXT NOT NULL DEFAULT '',
  priceRsd TEXT NOT NULL DEFAULT '',
  priceHuf TEXT NOT NULL DEFAULT '',
  productName TEXT NOT NULL DEFAULT '',
  dept TEXT NOT NULL DEFAULT '',
  cotton TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(documentId, lineNo),
  FOREIGN KEY(documentId) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_records_barcode ON records(barcode);

CREATE TABLE IF NOT EXISTS mails (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  provider TEXT NOT NULL,
  messageId TEXT NOT NULL,
  subject TEXT,
  sender TEXT,
  receivedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(provider, messageId)
);

CREATE TABLE IF NOT EXISTS refdata_cache (
  key TEXT PRIMARY KEY,
  blob BLOB NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  documentId INTEGER,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertDocument(provider, sourceID, filename, hash, rawRef, status string) (internal.DocumentRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (provider, sourceId, filename, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, sourceId) DO UPDATE SET
  filename=excluded.filename,
  hash=excluded.hash,
  status=excluded.status,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, provider, sourceID, filename, hash, status, rawRef)
	if err != nil {
		return internal.DocumentRow{}, err
	}

	row, err := d.GetDocumentBySourceID(provider, sourceID)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, errors.New("failed to upsert document")
	}
	return *row, nil
}

func (d *DB) GetDocumentBySourceID(provider, sourceID string) (*internal.DocumentRow, error) {
	var row internal.DocumentRow
	var receivedAt sql.NullString
	err := d.conn.QueryRow(`
SELECT id, provider, sourceId, filename, hash, status, rawRef, receivedAt
FROM documents WHERE provider = ? AND sourceId = ?
`, provider, sourceID).Scan(
		&row.ID, &row.Provider, &row.SourceID, &row.Filename, &row.Hash, &row.Status, &row.RawRef, &receivedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.ReceivedAt = receivedAt.String
	return &row, nil
}

func (d *DB) GetDocumentByID(id int) (*internal.DocumentRow, error) {
	var row internal.DocumentRow
	var receivedAt sql.NullString
	err := d.conn.QueryRow(`
SELECT id, provider, sourceId, filename, hash, status, rawRef, receivedAt
FROM documents WHERE id = ?
`, id).Scan(
		&row.ID, &row.Provider, &row.SourceID, &row.Filename, &row.Hash, &row.Status, &row.RawRef, &receivedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.ReceivedAt = receivedAt.String
	return &row, nil
}

func (d *DB) ListDocumentsByStatus(status string, limit int) ([]internal.DocumentRow, error) {
	rows, err := d.conn.Query(`
SELECT id, provider, sourceId, filename, hash, status, rawRef, receivedAt
FROM documents WHERE status = ? ORDER BY id ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentRow
	for rows.Next() {
		var row internal.DocumentRow
		var receivedAt sql.NullString
		if err := rows.Scan(&row.ID, &row.Provider, &row.SourceID, &row.Filename, &row.Hash, &row.Status, &row.RawRef, &receivedAt); err != nil {
			return nil, err
		}
		row.ReceivedAt = receivedAt.String
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateDocumentStatus(documentID int, status string) error {
	_, err := d.conn.Exec(`UPDATE documents SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, documentID)
	return err
}

// ReplaceRecords swaps the full record set of a document in one transaction.
// Reprocessing a document never leaves rows from an earlier pass behind.
func (d *DB) ReplaceRecords(documentID int, records []internal.Record) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records WHERE documentId = ?`, documentID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO records (
  documentId, lineNo, orderId, style, colour, supplierProductCode, itemClassification,
  supplierName, todayDate, collection, colourSku, styleMerchSeason, batch, sku, barcode,
  washingCode, priceEur, priceBgn, priceBam, pricePln, priceRon, priceCzk, priceMkd,
  priceRsd, priceHuf, productName, dept, cotton
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			documentID, i+1, r.OrderID, r.Style, r.Colour, r.SupplierProductCode, r.ItemClassification,
			r.SupplierName, r.TodayDate, r.Collection, r.ColourSKU, r.StyleMerchSeason, r.Batch, r.SKU, r.Barcode,
			r.WashingCode, r.EUR, r.BGN, r.BAM, r.PLN, r.RON, r.CZK, r.MKD,
			r.RSD, r.HUF, r.ProductName, r.Dept, r.Cotton,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRecords(documentID int) ([]internal.Record, error) {
	rows, err := d.conn.Query(`
SELECT orderId, style, colour, supplierProductCode, itemClassification,
       supplierName, todayDate, collection, colourSku, styleMerchSeason, batch, sku, barcode,
       washingCode, priceEur, priceBgn, priceBam, pricePln, priceRon, priceCzk, priceMkd,
       priceRsd, priceHuf, productName, dept, cotton
FROM records WHERE documentId = ? ORDER BY lineNo ASC
`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Record
	for rows.Next() {
		var r internal.Record
		if err := rows.Scan(
			&r.OrderID, &r.Style, &r.Colour, &r.SupplierProductCode, &r.ItemClassification,
			&r.SupplierName, &r.TodayDate, &r.Collection, &r.ColourSKU, &r.StyleMerchSeason, &r.Batch, &r.SKU, &r.Barcode,
			&r.WashingCode, &r.EUR, &r.BGN, &r.BAM, &r.PLN, &r.RON, &r.CZK, &r.MKD,
			&r.RSD, &r.HUF, &r.ProductName, &r.Dept, &r.Cotton,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) UpsertMail(provider, messageID, subject, sender, receivedAt, hash, rawRef, status string) (internal.MailRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO mails (provider, messageId, subject, sender, receivedAt, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, messageId) DO UPDATE SET
  subject=excluded.subject,
  sender=excluded.sender,
  receivedAt=excluded.receivedAt,
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, provider, messageID, subject, sender, receivedAt, hash, status, rawRef)
	if err != nil {
		return internal.MailRow{}, err
	}

	row, err := d.GetMailByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.MailRow{}, err
	}
	if row == nil {
		return internal.MailRow{}, errors.New("failed to upsert mail")
	}
	return *row, nil
}

func (d *DB) GetMailByProviderMessageID(provider, messageID string) (*internal.MailRow, error) {
	var row internal.MailRow
	err := d.conn.QueryRow(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM mails WHERE provider = ? AND messageId = ?
`, provider, messageID).Scan(
		&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustMailByProviderMessageID(provider, messageID string) (internal.MailRow, error) {
	row, err := d.GetMailByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.MailRow{}, err
	}
	if row == nil {
		return internal.MailRow{}, fmt.Errorf("mail not found: provider=%s messageId=%s", provider, messageID)
	}
	return *row, nil
}

func (d *DB) ListMailsByStatus(status string, limit int) ([]internal.MailRow, error) {
	rows, err := d.conn.Query(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM mails WHERE status = ? ORDER BY receivedAt ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.MailRow
	for rows.Next() {
		var row internal.MailRow
		if err := rows.Scan(&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateMailStatus(mailID int, status string) error {
	_, err := d.conn.Exec(`UPDATE mails SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, mailID)
	return err
}

func (d *DB) SetCachedTable(key string, blob []byte) error {
	_, err := d.conn.Exec(`
INSERT INTO refdata_cache (key, blob) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updatedAt = CURRENT_TIMESTAMP
`, key, blob)
	return err
}

func (d *DB) GetCachedTable(key string) ([]byte, error) {
	var blob []byte
	err := d.conn.QueryRow(`SELECT blob FROM refdata_cache WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (d *DB) InsertRun(traceID string, documentID int, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	var docID *int
	if documentID > 0 {
		docID = &documentID
	}
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, documentId, timingsJson, countsJson) VALUES (?, ?, ?, ?)`, traceID, docID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
