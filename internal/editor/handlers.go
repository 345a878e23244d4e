package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gearforge/drivetrain/internal/dispatcher"
	"github.com/gearforge/drivetrain/internal/repair"
	"github.com/gearforge/drivetrain/internal/util"
)

// Property names routed through the dispatcher. Section edits carry the
// asset name as their first argument.
const (
	PropNewDrivetrain = "NewDrivetrain"
	PropDrivetrain    = "Drivetrain"
	PropEngine        = "Engine"
	PropTransmission  = "Transmission"
	PropDifferential  = "Differential"
	PropSteeringCurve = "SteeringCurve"
	PropDownRatio     = "DownRatio"
	PropUpRatio       = "UpRatio"
	PropSave          = "Save"
	PropExport        = "Export"
	PropDelete        = "Delete"
)

// RegisterHandlers wires the editor operations into the dispatcher. The
// repair-triggering edits get debug logging, they are the ones worth
// tracing when a vehicle misbehaves after tuning.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(PropNewDrivetrain, s.handleNewDrivetrain)
	d.Register(PropDrivetrain, s.handleDrivetrain)
	d.Register(PropEngine, s.handleEngine)
	d.Register(PropTransmission, s.handleTransmission)
	d.Register(PropDifferential, s.handleDifferential)
	d.Register(PropSteeringCurve, s.handleSteeringCurve, dispatcher.Logged())
	d.Register(PropDownRatio, s.gearRatioHandler(repair.FieldGearDownRatio), dispatcher.Logged())
	d.Register(PropUpRatio, s.gearRatioHandler(repair.FieldGearUpRatio), dispatcher.Logged())
	d.Register(PropSave, s.handleSave)
	d.Register(PropExport, s.handleExport, dispatcher.Logged())
	d.Register(PropDelete, s.handleDelete)
}

func cleanArg(s string) string {
	return util.FixEscapeQuotes(util.TrimQuotes(s))
}

func assetNameArg(e dispatcher.Event, wantArgs int) (string, error) {
	if len(e.Args) != wantArgs {
		return "", fmt.Errorf("%s has %d args, want %d", e.Property, len(e.Args), wantArgs)
	}
	name := cleanArg(e.Args[0])
	if name == "" {
		return "", fmt.Errorf("%s: asset name is empty", e.Property)
	}
	return name, nil
}

func (s *Service) handleNewDrivetrain(e dispatcher.Event) (any, error) {
	name, err := assetNameArg(e, 1)
	if err != nil {
		return nil, err
	}
	d, err := s.NewAsset(name)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) handleDrivetrain(e dispatcher.Event) (any, error) {
	name, err := s.Import(e.Args)
	if err != nil {
		return nil, err
	}
	return name, nil
}

func (s *Service) handleEngine(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("%s has no args", e.Property)
	}
	name := cleanArg(e.Args[0])
	return nil, s.EditEngine(name, e.Args[1:])
}

func (s *Service) handleTransmission(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("%s has no args", e.Property)
	}
	name := cleanArg(e.Args[0])
	return nil, s.EditTransmission(name, e.Args[1:])
}

func (s *Service) handleDifferential(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("%s has no args", e.Property)
	}
	name := cleanArg(e.Args[0])
	return nil, s.EditDifferential(name, e.Args[1:])
}

func (s *Service) handleSteeringCurve(e dispatcher.Event) (any, error) {
	name, err := assetNameArg(e, 2)
	if err != nil {
		return nil, err
	}
	repaired, err := s.EditSteeringCurve(name, cleanArg(e.Args[1]))
	if err != nil {
		return nil, err
	}
	return repaired, nil
}

// gearRatioHandler builds the handler for one shift threshold property.
// Args: [name, gearIndex, value]
func (s *Service) gearRatioHandler(field repair.Field) dispatcher.HandlerFunc {
	return func(e dispatcher.Event) (any, error) {
		if len(e.Args) != 3 {
			return nil, fmt.Errorf("%s has %d args, want 3", e.Property, len(e.Args))
		}
		name := cleanArg(e.Args[0])
		if name == "" {
			return nil, fmt.Errorf("%s: asset name is empty", e.Property)
		}
		gear, err := parseWireInt(cleanArg(e.Args[1]))
		if err != nil {
			return nil, fmt.Errorf("%s: gear index: %w", e.Property, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(cleanArg(e.Args[2])), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: value: %w", e.Property, err)
		}
		repaired, err := s.EditGearRatio(name, field, gear, value)
		if err != nil {
			return nil, err
		}
		return repaired, nil
	}
}

func (s *Service) handleSave(e dispatcher.Event) (any, error) {
	name, err := assetNameArg(e, 1)
	if err != nil {
		return nil, err
	}
	id, err := s.Save(name)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func (s *Service) handleExport(e dispatcher.Event) (any, error) {
	name, err := assetNameArg(e, 1)
	if err != nil {
		return nil, err
	}
	res, err := s.Export(name)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) handleDelete(e dispatcher.Event) (any, error) {
	name, err := assetNameArg(e, 1)
	if err != nil {
		return nil, err
	}
	return nil, s.Delete(name)
}

// parseWireInt parses an index that the editor may serialize as a float.
func parseWireInt(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}
