// Package telemetry rewrites the machine identifiers stored in an editor's
// global configuration file.
package telemetry

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=telemetry.go -destination=mocks/mutator.gen.go -package=mocks

// Keys rewritten inside storage.json.
const (
	machineIDKey   = "telemetry.machineId"
	devDeviceIDKey = "telemetry.devDeviceId"
)

// IDs holds the telemetry identifiers of one editor installation.
type IDs struct {
	MachineID   string
	DevDeviceID string
}

// Rewrite reports an identifier replacement applied to a configuration
// file.
type Rewrite struct {
	Path string
	Old  IDs
	New  IDs
}

// Mutator reads and replaces editor telemetry identifiers.
type Mutator interface {
	// ReadIDs returns the identifiers currently stored in configPath
	// without modifying the file. Absent keys yield empty strings.
	ReadIDs(configPath string) (IDs, error)

	// RewriteIDs replaces both identifiers with freshly generated
	// values of the same format and returns the old and new values.
	// The file is replaced atomically; no partial write is observable.
	RewriteIDs(configPath string) (Rewrite, error)
}

type realMutator struct {
	fs     fs.FS
	logger logger.Logger
}

// NewMutatorParams contains parameters for creating a new Mutator.
type NewMutatorParams struct {
	FS     fs.FS
	Logger logger.Logger
}

// NewMutator creates a new Mutator.
func NewMutator(params NewMutatorParams) Mutator {
	log := params.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	return &realMutator{
		fs:     params.FS,
		logger: log,
	}
}

// ReadIDs loads configPath and extracts the telemetry identifiers.
func (m *realMutator) ReadIDs(configPath string) (IDs, error) {
	doc, err := m.loadDocument(configPath)
	if err != nil {
		return IDs{}, err
	}

	return IDs{
		MachineID:   stringValue(doc, machineIDKey),
		DevDeviceID: stringValue(doc, devDeviceIDKey),
	}, nil
}

// RewriteIDs replaces the telemetry identifiers in configPath. Keys
// absent from the document are created. All unrelated keys are kept
// untouched.
func (m *realMutator) RewriteIDs(configPath string) (Rewrite, error) {
	doc, err := m.loadDocument(configPath)
	if err != nil {
		return Rewrite{}, err
	}

	old := IDs{
		MachineID:   stringValue(doc, machineIDKey),
		DevDeviceID: stringValue(doc, devDeviceIDKey),
	}

	newIDs, err := generateIDs()
	if err != nil {
		return Rewrite{}, err
	}

	doc[machineIDKey] = rawString(newIDs.MachineID)
	doc[devDeviceIDKey] = rawString(newIDs.DevDeviceID)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Rewrite{}, fmt.Errorf("failed to encode %s: %w", configPath, err)
	}

	perm := os.FileMode(0644)
	if info, err := m.fs.Stat(configPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := m.fs.WriteFileAtomic(configPath, out, perm); err != nil {
		return Rewrite{}, fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	m.logger.Logf("rewrote telemetry identifiers in %s", configPath)

	return Rewrite{
		Path: configPath,
		Old:  old,
		New:  newIDs,
	}, nil
}

// loadDocument reads and parses configPath into a generic JSON object.
// Values stay raw so unrelated keys survive the rewrite byte for byte.
func (m *realMutator) loadDocument(configPath string) (map[string]json.RawMessage, error) {
	data, err := m.fs.ReadFile(configPath)
	if err != nil {
		if m.fs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}

	return doc, nil
}

// generateIDs produces identifiers in the formats the editor itself
// uses: a 64 character lowercase hex machine id and a version 4 UUID
// device id, both from a cryptographic source.
func generateIDs() (IDs, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return IDs{}, fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}

	deviceID, err := uuid.NewRandom()
	if err != nil {
		return IDs{}, fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}

	return IDs{
		MachineID:   hex.EncodeToString(buf),
		DevDeviceID: deviceID.String(),
	}, nil
}

// stringValue decodes the key's value, yielding "" for absent keys and
// non-string values alike.
func stringValue(doc map[string]json.RawMessage, key string) string {
	raw, ok := doc[key]
	if !ok {
		return ""
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

// rawString encodes s as a JSON string value. Marshaling a plain string
// cannot fail.
func rawString(s string) json.RawMessage {
	out, _ := json.Marshal(s)
	return out
}
