package fortran

import (
	"reflect"
	"testing"

	"github.com/fortmig/fortscan/internal/parser"
)

func parse(t *testing.T, src string) *parser.Extraction {
	t.Helper()
	p := New()
	result, err := p.Parse(parser.FileInput{Path: "test.f90", Content: []byte(src)})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestParseModuleDefinition(t *testing.T) {
	src := `
module constants
  implicit none
  real, parameter :: pi = 3.14159
end module constants
`
	result := parse(t, src)
	if !reflect.DeepEqual(result.DefinedModules, []string{"constants"}) {
		t.Errorf("expected [constants], got %v", result.DefinedModules)
	}
}

func TestParseModuleProcedureNotAModule(t *testing.T) {
	src := `
interface solve
  module procedure solve_real
  module subroutine solve_banded(a, b)
end interface
`
	result := parse(t, src)
	if len(result.DefinedModules) != 0 {
		t.Errorf("procedure keywords must not define modules, got %v", result.DefinedModules)
	}
	// "module subroutine x" is still a routine definition.
	if !reflect.DeepEqual(result.DefinedRoutines, []string{"solve_banded"}) {
		t.Errorf("expected [solve_banded], got %v", result.DefinedRoutines)
	}
}

func TestParseSubroutineWithModifiers(t *testing.T) {
	src := `
      recursive pure subroutine quicksort(a, lo, hi)
      SUBROUTINE LEGACY_UPPER(N)
      elemental impure subroutine mix(x)
`
	result := parse(t, src)
	want := []string{"legacy_upper", "mix", "quicksort"}
	if !reflect.DeepEqual(result.DefinedRoutines, want) {
		t.Errorf("expected %v, got %v", want, result.DefinedRoutines)
	}
}

func TestParseFunctionWithTypeSpecifier(t *testing.T) {
	src := `
real(kind=8) function norm2(v)
integer function count_atoms(cell)
pure complex(dp) function gamma_shift(z)
function bare(x)
`
	result := parse(t, src)
	want := []string{"bare", "count_atoms", "gamma_shift", "norm2"}
	if !reflect.DeepEqual(result.DefinedRoutines, want) {
		t.Errorf("expected %v, got %v", want, result.DefinedRoutines)
	}
}

func TestParseUseVariants(t *testing.T) {
	src := `
use constants
USE, intrinsic :: iso_fortran_env
use :: dimsmod
use m_kinds, only: dp
`
	result := parse(t, src)
	want := []string{"constants", "dimsmod", "iso_fortran_env", "m_kinds"}
	if !reflect.DeepEqual(result.Uses, want) {
		t.Errorf("expected %v, got %v", want, result.Uses)
	}
}

func TestParseCallAnywhereRepeatable(t *testing.T) {
	src := `
      if (ok) call setup(x); call teardown(y)
      CALL WLOG('starting')
`
	result := parse(t, src)
	want := []string{"setup", "teardown", "wlog"}
	if !reflect.DeepEqual(result.Calls, want) {
		t.Errorf("expected %v, got %v", want, result.Calls)
	}
}

func TestParseCommentsStripped(t *testing.T) {
	src := `
call real_target(x) ! call fake_target(y)
! module ghost
use live ! use dead
`
	result := parse(t, src)
	if !reflect.DeepEqual(result.Calls, []string{"real_target"}) {
		t.Errorf("expected [real_target], got %v", result.Calls)
	}
	if len(result.DefinedModules) != 0 {
		t.Errorf("commented module must be ignored, got %v", result.DefinedModules)
	}
	if !reflect.DeepEqual(result.Uses, []string{"live"}) {
		t.Errorf("expected [live], got %v", result.Uses)
	}
}

func TestParseUnrecognizedTextNeverErrors(t *testing.T) {
	src := "}}} not fortran at all {{{\n\x00\x01binary-ish\n      continue\n"
	p := New()
	result, err := p.Parse(parser.FileInput{Path: "junk.f", Content: []byte(src)})
	if err != nil {
		t.Fatalf("extraction must not fail on malformed text: %v", err)
	}
	if len(result.DefinedModules)+len(result.DefinedRoutines)+len(result.Uses)+len(result.Calls) != 0 {
		t.Errorf("expected empty extraction, got %+v", result)
	}
}

func TestParseDeduplicatesAndLowercases(t *testing.T) {
	src := `
call Foo(1)
call FOO(2)
call foo(3)
`
	result := parse(t, src)
	if !reflect.DeepEqual(result.Calls, []string{"foo"}) {
		t.Errorf("expected single lowercase foo, got %v", result.Calls)
	}
}
