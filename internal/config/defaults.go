package config

const (
	defaultBackend    = "numbat-build"
	defaultSrcDir     = "src"
	defaultUIDir      = "ui"
	defaultDistDir    = "dist"
	defaultWorkDir    = ".numbat-build"
	defaultCompiler   = "pyside6-uic"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultLineLength = 88
	defaultFailUnder  = 80.0
	defaultDocStyle   = "google"
)

// Default returns a Manifest populated with repository defaults. Project
// name and version are intentionally left empty; they must come from the
// manifest file.
func Default() Manifest {
	return Manifest{
		Build: Build{
			Backend:  defaultBackend,
			SrcDir:   defaultSrcDir,
			UIDir:    defaultUIDir,
			DistDir:  defaultDistDir,
			WorkDir:  defaultWorkDir,
			Compiler: defaultCompiler,
		},
		Tool: Tool{
			Docstrings: Docstrings{
				FailUnder: defaultFailUnder,
				Style:     defaultDocStyle,
				Exclude:   []string{"*_ui.py", "test_*.py"},
			},
			Lint: Lint{
				LineLength: defaultLineLength,
				Exclude:    []string{"*_ui.py"},
			},
			Format: Format{
				Profile:    "black",
				LineLength: defaultLineLength,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
