package signpost

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/types"
	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Journal is a Backend that writes every signpost as a structured log
// record. It stands in for the platform tracing subsystem where none exists.
//
//	j := &signpost.Journal{WorkingDir: wd, LoggingConfig: &cfg}
//	if err := j.Initialize(); err != nil { ... }
//	defer j.Close()
//	log := signpost.NewPOI("com.example.app").WithBackend(j)
//
// Records are written at info level, so a configured level above info turns
// the journal off. Interval end records carry the time elapsed since the
// matching begin.
type Journal struct {
	WorkingDir    string
	LoggingConfig *types.LoggingConfig
	// Writer, when set, replaces the file and console channels.
	Writer io.Writer

	logger        atomic.Pointer[zerolog.Logger]
	fileWriter    *lumberjack.Logger
	isInitialized atomic.Bool
	initOnce      sync.Once
	initErr       error

	mu     sync.Mutex
	idents []identity
	open   map[openKey]time.Time
	now    func() time.Time
}

type identity struct {
	subsystem string
	category  string
}

type openKey struct {
	h  Handle
	id uint64
}

// NewJournal returns a Journal for cfg rooted at workingDir. It still needs
// Initialize.
func NewJournal(workingDir string, cfg *types.LoggingConfig) *Journal {
	return &Journal{WorkingDir: workingDir, LoggingConfig: cfg}
}

// Initialize validates the configuration and opens the output channels.
// Only the first call does any work; later calls return its result.
func (j *Journal) Initialize() error {
	const op errors.Op = "signpost.Journal.Initialize"
	if j == nil {
		return errors.New(op).Msg(errMsgNilJournal)
	}
	j.initOnce.Do(func() {
		j.initErr = j.initialize(op)
	})
	return j.initErr
}

func (j *Journal) initialize(op errors.Op) error {
	if err := validateConfig(j.LoggingConfig); err != nil {
		return err
	}
	cfg := j.LoggingConfig

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgLevel)
	}

	writers, err := j.initializeWriters(op)
	if err != nil {
		return err
	}

	logger := zerolog.New(io.MultiWriter(writers...)).Level(level)
	if cfg.WithTimestamp {
		logger = logger.With().Timestamp().Logger()
	}

	j.mu.Lock()
	if j.open == nil {
		j.open = make(map[openKey]time.Time)
	}
	if j.now == nil {
		j.now = time.Now
	}
	j.mu.Unlock()

	j.logger.Store(&logger)
	j.isInitialized.Store(true)
	return nil
}

// Close stops the journal and closes the log file. It's safe to call Close
// multiple times.
func (j *Journal) Close() error {
	const op errors.Op = "signpost.Journal.Close"
	if j == nil || !j.isInitialized.Swap(false) {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.logger.Store(nil)
	clear(j.open)
	if j.fileWriter != nil {
		if err := j.fileWriter.Close(); err != nil {
			return errors.New(op).Err(err).Msg(errMsgCloseFile)
		}
	}
	return nil
}

// CreateHandle registers the identity and returns its handle. Handles are
// local to this Journal.
func (j *Journal) CreateHandle(subsystem, category string) Handle {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.idents = append(j.idents, identity{subsystem: subsystem, category: category})
	return Handle(len(j.idents))
}

// Enabled reports whether the journal is open, h is one of its handles, and
// info records pass the configured level.
func (j *Journal) Enabled(h Handle) bool {
	if j == nil || !j.isInitialized.Load() || h == NoHandle {
		return false
	}
	logger := j.logger.Load()
	if logger == nil || logger.GetLevel() > zerolog.InfoLevel {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return int(h) <= len(j.idents)
}

func (j *Journal) Emit(h Handle, kind Kind, id uint64, name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	// Close may have run since Enabled.
	logger := j.logger.Load()
	if logger == nil || h == NoHandle || int(h) > len(j.idents) {
		return
	}
	ident := j.idents[h-1]
	now := j.now()

	ev := logger.Info().
		Str("subsystem", ident.subsystem).
		Str("category", ident.category).
		Stringer("kind", kind).
		Uint64("id", id).
		Str("name", name)

	key := openKey{h: h, id: id}
	switch kind {
	case KindIntervalBegin:
		j.open[key] = now
	case KindIntervalEnd:
		if start, ok := j.open[key]; ok {
			delete(j.open, key)
			ev = ev.Dur("elapsed", now.Sub(start))
		}
	}
	ev.Msg("signpost")
}

// initializeWriters opens the configured channels. An explicit Writer wins
// over both.
func (j *Journal) initializeWriters(op errors.Op) ([]io.Writer, error) {
	if j.Writer != nil {
		return []io.Writer{j.Writer}, nil
	}

	cfg := j.LoggingConfig
	var writers []io.Writer

	if cfg.FileLogging {
		if j.WorkingDir == emptyString {
			return nil, errors.New(op).Msg(errMsgWorkingDirUnset)
		}
		dir := filepath.Join(j.WorkingDir, cfg.RelLogFileDir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
		}
		exeName, err := utils.ExecName(true)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgExecName)
		}
		j.fileWriter = j.initializeRollingFileLogger(exeName)
		writers = append(writers, j.fileWriter)
	}
	if cfg.ConsoleLogging {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    cfg.ConsoleNoColor,
			TimeFormat: cfg.ConsoleTimeFormat,
		})
	}
	if len(writers) == 0 {
		return nil, errors.New(op).Msg(errMsgNoChannels)
	}
	return writers, nil
}

func (j *Journal) initializeRollingFileLogger(exeName string) *lumberjack.Logger {
	if exeName == emptyString {
		exeName = "app"
	}

	path := filepath.Join(j.WorkingDir, j.LoggingConfig.RelLogFileDir, exeName+".signposts.log")

	return &lumberjack.Logger{
		Filename:   path,
		MaxBackups: j.LoggingConfig.LogFileMaxBackups,
		MaxAge:     j.LoggingConfig.LogFileMaxAgeDays,
		MaxSize:    j.LoggingConfig.LogFileMaxSizeMB,
		Compress:   j.LoggingConfig.LogFileCompress,
	}
}
