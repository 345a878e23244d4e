package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&CatalogInfo{},
	&DrivetrainAsset{},
	&ExportRecord{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// CatalogInfo contains information about this asset catalog instance
type CatalogInfo struct {
	gorm.Model
	CatalogName        string `json:"catalogName" gorm:"size:127"` // primary key
	CatalogDescription string `json:"catalogDescription" gorm:"size:255"`
	ProjectName        string `json:"projectName" gorm:"size:127"`
	BackendVersion     string `json:"backendVersion" gorm:"size:64"`
}

func (*CatalogInfo) TableName() string {
	return "catalog_infos"
}

////////////////////////
// ASSET MODELS
////////////////////////

// DrivetrainAsset is the persisted form of an authored drivetrain. Scalar
// tuning values are columns; the three curves and the per-wheel flags are
// stored as JSON documents so schema migrations do not track curve shape.
type DrivetrainAsset struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:127;uniqueIndex:idx_drivetrain_asset_name"`
	Description string `json:"description" gorm:"size:255"`
	Author      string `json:"author" gorm:"size:64"`

	// Engine, engineering units
	EngineMOI                               float64 `json:"engineMoi"`
	EngineMaxRPM                            float64 `json:"engineMaxRpm"`
	DampingRateFullThrottle                 float64 `json:"dampingRateFullThrottle"`
	DampingRateZeroThrottleClutchEngaged    float64 `json:"dampingRateZeroThrottleClutchEngaged"`
	DampingRateZeroThrottleClutchDisengaged float64 `json:"dampingRateZeroThrottleClutchDisengaged"`
	TorqueCurve                             datatypes.JSON `json:"torqueCurve" gorm:"default:'[]'"` // []core.TorqueSample

	// Transmission
	ClutchStrength  float64        `json:"clutchStrength"`
	GearSwitchTime  float64        `json:"gearSwitchTime"`
	ReverseRatio    float64        `json:"reverseRatio"`
	FinalDriveRatio float64        `json:"finalDriveRatio"`
	NeutralUpRatio  float64        `json:"neutralUpRatio"`
	AutoBoxLatency  float64        `json:"autoBoxLatency"`
	UseAutoBox      bool           `json:"useAutoBox" gorm:"default:true"`
	ForwardGears    datatypes.JSON `json:"forwardGears" gorm:"default:'[]'"` // []core.GearData

	// Chassis
	WheelCount     int            `json:"wheelCount"`
	DrivenWheels   datatypes.JSON `json:"drivenWheels" gorm:"default:'[]'"` // []bool, one per wheel
	SteeringCurve  datatypes.JSON `json:"steeringCurve" gorm:"default:'[]'"` // []core.SteeringSample
	IdleBrakeInput float64        `json:"idleBrakeInput"`

	ExportRecords []ExportRecord `json:"-"`
}

func (*DrivetrainAsset) TableName() string {
	return "drivetrain_assets"
}

// GetOrInsert looks the asset up by name, inserting it if absent. On a hit
// the receiver is overwritten with the stored record.
func (a *DrivetrainAsset) GetOrInsert(db *gorm.DB) (
	created bool,
	err error,
) {
	var existing DrivetrainAsset
	err = db.Where("name = ?", a.Name).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// insert
			err = db.Create(a).Error
			return true, err
		}
		return false, err
	}
	// overwrite with db record if found
	*a = existing
	return false, nil
}

// ExportRecord is one conversion of an asset to backend form. The normalized
// payload is kept so an export can be audited after the asset changes.
type ExportRecord struct {
	ID                uint            `json:"id" gorm:"primarykey;autoIncrement;"`
	Time              time.Time       `json:"time" gorm:"index:idx_exportrecord_time"`
	DrivetrainAssetID uint            `json:"drivetrainAssetId" gorm:"index:idx_exportrecord_asset_id"`
	DrivetrainAsset   DrivetrainAsset `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:DrivetrainAssetID;"`

	BackendPayload    datatypes.JSON `json:"backendPayload" gorm:"default:'{}'"` // full physx setup as JSON
	TruncatedSamples  int            `json:"truncatedSamples"`                   // torque samples dropped by the key cap
	RepairedFields    datatypes.JSON `json:"repairedFields" gorm:"default:'[]'"` // field names touched by the repair pass
	BackendVersion    string         `json:"backendVersion" gorm:"size:64"`
	ExporterVersion   string         `json:"exporterVersion" gorm:"size:64"`
}

func (*ExportRecord) TableName() string {
	return "export_records"
}

// ErrAssetNotFound is returned by storage backends when no asset with the
// given name exists.
type ErrAssetNotFound struct {
	Name string
}

func (e *ErrAssetNotFound) Error() string {
	return "asset not found: " + e.Name
}
