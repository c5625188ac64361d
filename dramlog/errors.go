package dramlog

import "fmt"

// ArtifactNotFoundError reports a missing settings or log file. The
// reads are one-shot and local, so there is no retry path.
type ArtifactNotFoundError struct {
	Path string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("artifact %s does not exist", e.Path)
}

// MalformedArtifactError reports a settings or log file that exists but
// cannot be parsed, or that lacks a required field.
type MalformedArtifactError struct {
	Path string
	Err  error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("artifact %s is malformed: %s", e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error {
	return e.Err
}

// UnrecognizedAttackKindError reports an attack whose name matches no
// known kind prefix. Skipping such an attack would silently
// under-report affected rows, so loading fails instead.
type UnrecognizedAttackKindError struct {
	Set    string
	Attack string
}

func (e *UnrecognizedAttackKindError) Error() string {
	return fmt.Sprintf(
		"attack %q in set %q has an unrecognized kind, expecting a "+
			"name starting with \"pair\" or \"sequential\"",
		e.Attack, e.Set)
}
