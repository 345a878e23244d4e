// Package editor implements the authoring operations behind the property
// dispatcher: seeding new drivetrains, applying section edits to the cached
// working copy, and converting finished assets to the physics backend form.
package editor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/gearforge/drivetrain/internal/cache"
	"github.com/gearforge/drivetrain/internal/model"
	"github.com/gearforge/drivetrain/internal/model/convert"
	"github.com/gearforge/drivetrain/internal/model/core"
	"github.com/gearforge/drivetrain/internal/parser"
	"github.com/gearforge/drivetrain/internal/repair"
	"github.com/gearforge/drivetrain/internal/storage"
	"github.com/gearforge/drivetrain/pkg/physx"
)

// Dependencies holds all dependencies needed by the editor service
type Dependencies struct {
	Cache   *cache.AssetCache
	Backend storage.Backend
	Parser  *parser.Parser
	Logger  *slog.Logger
}

// Service provides the editing and export operations
type Service struct {
	deps Dependencies
}

// NewService creates a new editor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{deps: deps}
}

// BackendSetup is the complete physics backend configuration for one
// vehicle, produced by Export. The steering curve passes through in
// engineering units; the backend samples it directly.
type BackendSetup struct {
	Engine         physx.EngineConfig       `json:"engine"`
	Clutch         physx.ClutchConfig       `json:"clutch"`
	Gears          physx.GearsConfig        `json:"gears"`
	AutoBox        physx.AutoBoxConfig      `json:"autoBox"`
	UseAutoBox     bool                     `json:"useAutoBox"`
	Differential   physx.DifferentialConfig `json:"differential"`
	SteeringCurve  core.SteeringCurve       `json:"steeringCurve"`
	IdleBrakeInput float64                  `json:"idleBrakeInput"`
}

// ExportResult reports what Export produced and what it had to change.
type ExportResult struct {
	Setup            BackendSetup
	TruncatedSamples int
	RepairedFields   []string
}

// NewAsset seeds a fresh drivetrain from the backend factory defaults and
// caches it as the working copy.
func (s *Service) NewAsset(name string) (core.DrivetrainData, error) {
	if name == "" {
		return core.DrivetrainData{}, fmt.Errorf("asset name is empty")
	}
	d := convert.FromBackendDefaults(physx.FactoryDefaults())
	s.deps.Cache.Set(name, d)
	s.deps.Logger.Info("Seeded new drivetrain", "name", name)
	return d, nil
}

// Import parses a complete drivetrain document, repairs it and caches it as
// the working copy.
func (s *Service) Import(data []string) (string, error) {
	name, d, err := s.deps.Parser.ParseDrivetrain(data)
	if err != nil {
		return "", err
	}

	if touched := repair.All(&d); len(touched) > 0 {
		s.deps.Logger.Warn("Imported drivetrain needed repairs",
			"name", name,
			"fields", repair.FieldNames(touched))
	}

	s.deps.Cache.Set(name, d)
	return name, nil
}

// Get returns the working copy, loading it from storage on a cache miss.
func (s *Service) Get(name string) (core.DrivetrainData, error) {
	if d, ok := s.deps.Cache.Get(name); ok {
		return d, nil
	}

	d, err := s.deps.Backend.GetAsset(name)
	if err != nil {
		return core.DrivetrainData{}, err
	}
	s.deps.Cache.Set(name, d)
	return d, nil
}

// EditEngine replaces the engine section of the working copy.
func (s *Service) EditEngine(name string, args []string) error {
	d, err := s.Get(name)
	if err != nil {
		return err
	}

	engine, err := s.deps.Parser.ParseEngine(args)
	if err != nil {
		return err
	}

	d.Engine = engine
	s.deps.Cache.Set(name, d)
	return nil
}

// EditTransmission replaces the gearbox section of the working copy. The
// shift windows are repaired afterwards so an inverted pair never survives
// an edit.
func (s *Service) EditTransmission(name string, args []string) error {
	d, err := s.Get(name)
	if err != nil {
		return err
	}

	trans, err := s.deps.Parser.ParseTransmission(args)
	if err != nil {
		return err
	}

	d.Transmission = trans
	repair.Apply(&d, repair.FieldGearDownRatio)
	repair.Apply(&d, repair.FieldGearUpRatio)
	s.deps.Cache.Set(name, d)
	return nil
}

// EditDifferential replaces the per-wheel driven flags of the working copy.
func (s *Service) EditDifferential(name string, args []string) error {
	d, err := s.Get(name)
	if err != nil {
		return err
	}

	entries, wheelCount, err := s.deps.Parser.ParseDifferential(args)
	if err != nil {
		return err
	}
	if len(entries) != wheelCount {
		return fmt.Errorf("%d driven flags for %d wheels", len(entries), wheelCount)
	}

	d.Differential = entries
	d.WheelCount = wheelCount
	s.deps.Cache.Set(name, d)
	return nil
}

// EditSteeringCurve replaces the steering curve of the working copy and
// clamps its multipliers.
func (s *Service) EditSteeringCurve(name string, curveArg string) (repaired bool, err error) {
	d, err := s.Get(name)
	if err != nil {
		return false, err
	}

	curve, err := s.deps.Parser.ParseSteeringCurve(curveArg)
	if err != nil {
		return false, err
	}

	d.SteeringCurve = curve
	repaired = repair.Apply(&d, repair.FieldSteeringCurve)
	s.deps.Cache.Set(name, d)
	return repaired, nil
}

// EditGearRatio updates one shift threshold of one forward gear and repairs
// the shift window. field must be FieldGearDownRatio or FieldGearUpRatio.
func (s *Service) EditGearRatio(name string, field repair.Field, gear int, value float64) (repaired bool, err error) {
	d, err := s.Get(name)
	if err != nil {
		return false, err
	}

	if gear < 0 || gear >= len(d.Transmission.ForwardGears) {
		return false, fmt.Errorf("gear %d out of range, drivetrain has %d forward gears",
			gear, len(d.Transmission.ForwardGears))
	}

	switch field {
	case repair.FieldGearDownRatio:
		d.Transmission.ForwardGears[gear].DownRatio = value
	case repair.FieldGearUpRatio:
		d.Transmission.ForwardGears[gear].UpRatio = value
	default:
		return false, fmt.Errorf("field %q is not a gear ratio", field)
	}

	repaired = repair.Apply(&d, field)
	s.deps.Cache.Set(name, d)
	return repaired, nil
}

// Save persists the working copy and remembers its storage ID.
func (s *Service) Save(name string) (uint, error) {
	d, ok := s.deps.Cache.Get(name)
	if !ok {
		return 0, &model.ErrAssetNotFound{Name: name}
	}

	id, err := s.deps.Backend.SaveAsset(name, &d)
	if err != nil {
		return 0, err
	}
	s.deps.Cache.SetID(name, id)

	s.deps.Logger.Info("Saved drivetrain", "name", name, "id", id)
	return id, nil
}

// Export converts the working copy to the backend representation, records
// the export and returns the produced setup. The asset is saved first so
// the audit record has a row to point at.
func (s *Service) Export(name string) (ExportResult, error) {
	var res ExportResult

	d, err := s.Get(name)
	if err != nil {
		return res, err
	}

	// repair before converting, exports never carry out-of-range values
	res.RepairedFields = repair.FieldNames(repair.All(&d))
	if len(res.RepairedFields) > 0 {
		s.deps.Cache.Set(name, d)
	}

	res.TruncatedSamples = convert.TruncatedTorqueSamples(&d.Engine)
	if res.TruncatedSamples > 0 {
		s.deps.Logger.Warn("Torque curve exceeds backend key cap, dropping tail samples",
			"name", name,
			"dropped", res.TruncatedSamples,
			"cap", physx.MaxTorqueCurveEntries)
	}

	engine, err := convert.ToEngineConfig(&d.Engine)
	if err != nil {
		return res, fmt.Errorf("export %q: %w", name, err)
	}
	diff, err := convert.ToDifferentialConfig(d.Differential, d.WheelCount)
	if err != nil {
		return res, fmt.Errorf("export %q: %w", name, err)
	}
	clutch, gears, auto := convert.ToTransmissionConfigs(&d.Transmission)

	res.Setup = BackendSetup{
		Engine:         engine,
		Clutch:         clutch,
		Gears:          gears,
		AutoBox:        auto,
		UseAutoBox:     d.Transmission.UseAutoBox,
		Differential:   diff,
		SteeringCurve:  d.SteeringCurve,
		IdleBrakeInput: d.IdleBrakeInput,
	}

	id, err := s.Save(name)
	if err != nil {
		return res, err
	}

	payload, err := json.Marshal(res.Setup)
	if err != nil {
		return res, fmt.Errorf("marshal backend payload: %w", err)
	}
	repaired, err := json.Marshal(res.RepairedFields)
	if err != nil {
		return res, fmt.Errorf("marshal repaired fields: %w", err)
	}

	rec := model.ExportRecord{
		Time:              time.Now(),
		DrivetrainAssetID: id,
		BackendPayload:    datatypes.JSON(payload),
		TruncatedSamples:  res.TruncatedSamples,
		RepairedFields:    datatypes.JSON(repaired),
		BackendVersion:    s.deps.Parser.BackendVersion(),
		ExporterVersion:   s.deps.Parser.ExporterVersion(),
	}
	if err := s.deps.Backend.RecordExport(&rec); err != nil {
		return res, err
	}

	s.deps.Logger.Info("Exported drivetrain",
		"name", name,
		"truncatedSamples", res.TruncatedSamples,
		"repairedFields", res.RepairedFields)
	return res, nil
}

// Delete removes an asset from storage and drops its working copy.
func (s *Service) Delete(name string) error {
	if err := s.deps.Backend.DeleteAsset(name); err != nil {
		return err
	}
	s.deps.Cache.Delete(name)
	return nil
}
