package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"packlist/internal"
	"packlist/internal/config"
	"packlist/internal/connectors"
	gmailconnector "packlist/internal/connectors/gmail"
	imapconnector "packlist/internal/connectors/imap"
	"packlist/internal/listener"
	"packlist/internal/pipeline"
	"packlist/internal/refdata"
	"packlist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "refdata:sync":
		svc, err := refdata.NewSyncService(db, cfg)
		must(err)
		must(svc.ForceSync(context.Background()))
		fmt.Println("reference tables synced")
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		pdfPath := fs.String("pdf", "", "primary packing-list pdf")
		extra := fs.String("extra", "", "comma-separated secondary pdfs (order ids only)")
		colour := fs.String("colour", "", "manual colour override")
		dept := fs.String("dept", "", "department")
		product := fs.String("product", "", "product name")
		materials := fs.String("materials", "", "materials as name:composition,name:composition")
		washing := fs.String("washing", "", "washing code key (1-15)")
		pln := fs.String("pln", "", "PLN price, e.g. 17.5")
		out := fs.String("out", "", "output csv path")
		xlsxOut := fs.String("xlsx", "", "optional preview xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*pdfPath) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--pdf and --out are required"))
		}
		if strings.TrimSpace(*washing) == "" || strings.TrimSpace(*pln) == "" {
			must(fmt.Errorf("--washing and --pln are required"))
		}

		sync, err := refdata.NewSyncService(db, cfg)
		must(err)
		snap, err := sync.Load(context.Background())
		must(err)

		processor := pipeline.NewProcessingService(db, cfg)
		result, err := processor.ProcessFile(*pdfPath, splitList(*extra), snap, pipeline.Options{
			ColourOverride: *colour,
			Department:     *dept,
			ProductName:    *product,
			Materials:      parseMaterials(*materials),
			WashingKey:     strings.TrimSpace(*washing),
			PLNPrice:       strings.TrimSpace(*pln),
		})
		must(err)
		must(pipeline.ExportCSVFile(result.Records, *out))
		if strings.TrimSpace(*xlsxOut) != "" {
			must(pipeline.ExportXLSXFile(result.Records, *xlsxOut))
		}
		fmt.Printf("process done documentId=%d records=%d output=%s\n", result.DocumentID, len(result.Records), *out)
	case "export:csv", "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		documentID := fs.Int("documentId", 0, "internal document id")
		out := fs.String("out", "", "output path")
		_ = fs.Parse(os.Args[2:])
		if *documentID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--documentId and --out are required"))
		}
		records, err := db.ListRecords(*documentID)
		must(err)
		if len(records) == 0 {
			must(fmt.Errorf("no records for documentId=%d", *documentID))
		}
		if cmd == "export:csv" {
			must(pipeline.ExportCSVFile(records, *out))
		} else {
			must(pipeline.ExportXLSXFile(records, *out))
		}
		fmt.Printf("exported %d records to %s\n", len(records), *out)
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawMailDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "mail:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		messageID := fs.String("messageId", "", "specific message-id")
		batch := fs.Int("batch", 20, "batch size")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg)
		if strings.TrimSpace(*messageID) != "" {
			mail, err := db.MustMailByProviderMessageID(*provider, *messageID)
			must(err)
			res, err := processor.ProcessMail(mail)
			must(err)
			fmt.Printf("processed mail id=%d documents=%d records=%d\n", res.MailID, res.Documents, res.Records)
			return
		}
		mails, documents, err := processor.ProcessPendingMails(*batch, *provider)
		must(err)
		fmt.Printf("processed pending mails=%d documents=%d\n", mails, documents)
	case "mail:listen":
		s := listener.NewService(db, cfg)
		must(s.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func splitList(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseMaterials(input string) []internal.MaterialInput {
	out := []internal.MaterialInput{}
	for _, part := range splitList(input) {
		name, composition, _ := strings.Cut(part, ":")
		out = append(out, internal.MaterialInput{
			Name:        strings.TrimSpace(name),
			Composition: strings.TrimSpace(composition),
		})
	}
	return out
}

func usage() {
	fmt.Println("usage: packlist <command>")
	fmt.Println("commands:")
	fmt.Println("  refdata:sync")
	fmt.Println("  process --pdf=list.pdf --washing=3 --pln=17.5 --out=./out/bom.csv")
	fmt.Println("          [--extra=a.pdf,b.pdf] [--colour=NAVY] [--dept=...] [--product=...]")
	fmt.Println("          [--materials=cotton:90,elastane:10] [--xlsx=./out/preview.xlsx]")
	fmt.Println("  export:csv --documentId=1 --out=./out/bom.csv")
	fmt.Println("  export:xlsx --documentId=1 --out=./out/bom.xlsx")
	fmt.Println("  mail:fetch --provider=gmail|imap --label=INBOX --max=50")
	fmt.Println("  mail:process --provider=gmail|imap [--messageId=...] [--batch=20]")
	fmt.Println("  mail:listen")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
