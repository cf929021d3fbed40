package pipeline

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"packlist/internal"
	"packlist/internal/config"
	"packlist/internal/refdata"
	"packlist/internal/storage"
	"packlist/internal/util"
)

// Options carries the operator-resolved inputs of one processing pass. The
// core stays stateless: everything a human picked on the form arrives here
// already decided.
type Options struct {
	ColourOverride string
	Department     string
	ProductName    string
	Materials      []internal.MaterialInput
	WashingKey     string
	PLNPrice       string
	Today          time.Time
}

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type ProcessResult struct {
	DocumentID int
	Records    []internal.Record
}

// ProcessFile runs the full pass over a primary packing list: extract,
// parse, build one record per barcode, enrich with the operator's choices
// and the reference snapshot, then persist the record set for export.
// Secondary documents contribute only their order ids.
func (s *ProcessingService) ProcessFile(primaryPath string, extraPaths []string, snap refdata.Snapshot, opts Options) (ProcessResult, error) {
	start := time.Now()

	blob, err := os.ReadFile(primaryPath)
	if err != nil {
		return ProcessResult{}, err
	}

	records, err := ParseRecords(blob, opts.ColourOverride, opts.Today)
	if err != nil {
		return ProcessResult{}, err
	}

	extraIDs := collectExtraOrderIDs(extraPaths)
	if err := Enrich(records, extraIDs, snap, opts); err != nil {
		return ProcessResult{}, err
	}

	hash := sha256.Sum256(blob)
	doc, err := s.db.UpsertDocument("file", primaryPath, filepath.Base(primaryPath), hex.EncodeToString(hash[:]), primaryPath, "processed")
	if err != nil {
		return ProcessResult{}, err
	}
	if err := s.db.ReplaceRecords(doc.ID, records); err != nil {
		return ProcessResult{}, err
	}
	_ = s.db.InsertRun(traceID(), doc.ID,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"records": len(records), "extraOrderIds": len(extraIDs)})

	return ProcessResult{DocumentID: doc.ID, Records: records}, nil
}

// ParseRecords turns raw PDF bytes into base records: page-1 fields, page-2
// colour, page-3 SKU/barcode pairs. colourOverride resolves a
// RequiresManualInput colour; without one, ErrColourManual propagates.
func ParseRecords(blob []byte, colourOverride string, today time.Time) ([]internal.Record, error) {
	pages, err := ExtractPagesFromBytes(blob)
	if err != nil {
		return nil, err
	}
	if len(pages) < MinPages {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPages, len(pages))
	}

	fields := ParsePage1(pages[0])

	colour, err := ParseColour(pages[1])
	if err != nil {
		if colourOverride == "" {
			return nil, err
		}
		colour = strings.ToUpper(strings.TrimSpace(colourOverride))
		if colour == "" {
			colour = "UNKNOWN"
		}
	}

	items := ParsePage3(pages[2])
	if today.IsZero() {
		today = time.Now()
	}
	return BuildRecords(fields, colour, items, today), nil
}

// Enrich mutates base records in place: merged order ids, collection
// recode and suffix, department, cotton flag, multilingual product name,
// washing code and the currency ladder. Export is gated on a successful
// price lookup.
func Enrich(records []internal.Record, extraOrderIDs []string, snap refdata.Snapshot, opts Options) error {
	washing, ok := WashingCodes[opts.WashingKey]
	if !ok {
		return fmt.Errorf("unknown washing code key %q", opts.WashingKey)
	}

	if err := ValidateCompositions(opts.Materials); err != nil {
		return err
	}

	pln, err := util.ParseDecimal(opts.PLNPrice)
	if err != nil {
		return fmt.Errorf("PLN price: %w", err)
	}
	if pln < 0 {
		return fmt.Errorf("PLN price can't be negative")
	}
	prices, err := LookupPrices("PLN", pln, snap.Prices)
	if err != nil {
		return err
	}

	productName := ""
	if row, found := snap.Translations.Find(opts.Department, opts.ProductName); found {
		productName = AssembleLabel(opts.ProductName, row, opts.Materials, snap.Materials)
	}
	cotton := CottonFlag(opts.Materials)

	extra := strings.Join(extraOrderIDs, "+")

	for i := range records {
		r := &records[i]
		if extra != "" {
			r.OrderID = r.OrderID + "+" + extra
		}
		category := Classify(r.ItemClassification)
		r.Collection = RecodeCollection(r.Collection, category)
		r.Collection = CollectionSuffix(r.Collection, r.ItemClassification)
		r.Dept = Department(r.ItemClassification)
		r.Cotton = cotton
		r.ProductName = productName
		r.WashingCode = washing
		r.EUR = prices["EUR"]
		r.BGN = prices["BGN"]
		r.BAM = prices["BAM"]
		r.RON = prices["RON"]
		r.CZK = prices["CZK"]
		r.MKD = prices["MKD"]
		r.RSD = prices["RSD"]
		r.HUF = prices["HUF"]
		r.PLN = FormatAmount(pln, "PLN")
	}
	return nil
}

func collectExtraOrderIDs(paths []string) []string {
	out := []string{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		if id := ParseOrderIDOnly(f); id != nil {
			out = append(out, *id)
		}
		_ = f.Close()
	}
	return out
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
