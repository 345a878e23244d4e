package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gearforge/drivetrain/internal/api"
	"github.com/gearforge/drivetrain/internal/dispatcher"
	"github.com/gearforge/drivetrain/internal/editor"
	"github.com/gearforge/drivetrain/internal/influx"
	"github.com/gearforge/drivetrain/internal/repair"
)

const usage = `usage: drivetrainctl <command> [args]

commands:
  seed <name>             create a drivetrain from factory defaults and save it
  import <name> <file>    import a drivetrain JSON document and save it
  export <name> [out]     convert to the physics backend form, write <out>.json.gz
  list                    list stored drivetrains
  history <name>          show the export history of a drivetrain
  validate <file>         parse a document and report needed repairs
  delete <name>           remove a drivetrain
  version                 print tool and backend versions
`

func runCommand(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "seed":
		return cmdSeed(rest)
	case "import":
		return cmdImport(rest)
	case "export":
		return cmdExport(rest)
	case "list":
		return cmdList()
	case "history":
		return cmdHistory(rest)
	case "validate":
		return cmdValidate(rest)
	case "delete":
		return cmdDelete(rest)
	case "version":
		fmt.Printf("%s %s (built %s)\n", ToolName, ToolVersion, BuildDate)
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func dispatch(property string, args ...string) (any, error) {
	return eventDispatcher.Dispatch(dispatcher.Event{
		Property:  property,
		Args:      args,
		Timestamp: time.Now(),
	})
}

func cmdSeed(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("seed needs exactly one name")
	}
	name := args[0]
	activeAsset = name

	if _, err := dispatch(editor.PropNewDrivetrain, name); err != nil {
		return err
	}
	id, err := dispatch(editor.PropSave, name)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %q from factory defaults (id %v)\n", name, id)
	return nil
}

func cmdImport(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("import needs a name and a file")
	}
	name, path := args[0], args[1]
	activeAsset = name

	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	if _, err := dispatch(editor.PropDrivetrain, name, string(doc)); err != nil {
		return err
	}
	if _, err := dispatch(editor.PropSave, name); err != nil {
		return err
	}

	fmt.Printf("Imported %q from %s\n", name, path)
	return nil
}

func cmdExport(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("export needs a name and an optional output path")
	}
	name := args[0]
	activeAsset = name

	start := time.Now()
	result, err := dispatch(editor.PropExport, name)
	if err != nil {
		return err
	}
	res, ok := result.(editor.ExportResult)
	if !ok {
		return fmt.Errorf("unexpected export result type %T", result)
	}

	outPath := fmt.Sprintf("%s_%s.json.gz", name, SessionStartTime.Format("20060102_150405"))
	if len(args) == 2 {
		outPath = args[1]
	}
	outPath = strings.ReplaceAll(outPath, " ", "_")

	if err := writeSetupFile(outPath, &res); err != nil {
		return err
	}

	if influxManager != nil {
		point := influx.ExportPoint(name, res.TruncatedSamples, len(res.RepairedFields), time.Since(start), time.Now())
		if err := influxManager.WritePoint(context.Background(), influx.BucketExports, point); err != nil {
			Logger.Warn("Failed to record export metric", "error", err)
		}
	}

	if viper.GetBool("api.enabled") {
		client := api.New(viper.GetString("api.url"), viper.GetString("api.key"))
		err := client.Upload(outPath, api.UploadMetadata{
			AssetName:        name,
			BackendVersion:   viper.GetString("backend.version"),
			ExporterVersion:  viper.GetString("exporter.version"),
			TruncatedSamples: res.TruncatedSamples,
		})
		if err != nil {
			Logger.Warn("Failed to upload setup to catalog", "error", err)
		} else {
			fmt.Printf("Uploaded %s to catalog\n", outPath)
		}
	}

	fmt.Printf("Exported %q to %s\n", name, outPath)
	if res.TruncatedSamples > 0 {
		fmt.Printf("warning: dropped %d torque samples over the backend key cap\n", res.TruncatedSamples)
	}
	if len(res.RepairedFields) > 0 {
		fmt.Printf("repaired before export: %s\n", strings.Join(res.RepairedFields, ", "))
	}
	return nil
}

func writeSetupFile(path string, res *editor.ExportResult) error {
	payload, err := json.MarshalIndent(res.Setup, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling backend setup: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() { _ = f.Close() }()

	gzWriter := gzip.NewWriter(f)
	defer func() { _ = gzWriter.Close() }()
	if _, err = gzWriter.Write(payload); err != nil {
		return fmt.Errorf("error writing to gzip: %w", err)
	}
	return nil
}

func cmdList() error {
	names, err := storageBackend.ListAssets()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No drivetrains stored.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cmdHistory(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("history needs exactly one name")
	}
	name := args[0]

	recs, err := storageBackend.ListExports(name)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("No exports recorded for %q.\n", name)
		return nil
	}

	for _, rec := range recs {
		var repaired []string
		_ = json.Unmarshal(rec.RepairedFields, &repaired)
		fmt.Printf("%s  backend=%s exporter=%s truncated=%d repaired=[%s]\n",
			rec.Time.Format(time.RFC3339),
			rec.BackendVersion,
			rec.ExporterVersion,
			rec.TruncatedSamples,
			strings.Join(repaired, ","))
	}
	return nil
}

func cmdValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("validate needs exactly one file")
	}
	path := args[0]

	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	// parse without caching so the repair report reflects the raw document
	_, d, err := wireParser.ParseDrivetrain([]string{"validate", string(doc)})
	if err != nil {
		return fmt.Errorf("document invalid: %w", err)
	}
	touched := repair.All(&d)

	if len(touched) == 0 {
		fmt.Println("Document valid, no repairs needed.")
	} else {
		fmt.Printf("Document valid after repairs: %s\n", strings.Join(repair.FieldNames(touched), ", "))
	}
	return nil
}

func cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete needs exactly one name")
	}
	name := args[0]

	if _, err := dispatch(editor.PropDelete, name); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", name)
	return nil
}
