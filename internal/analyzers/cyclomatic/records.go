package cyclomatic

import "fmt"

// Block is a single analyzed code block: a function, a method, or a class.
type Block interface {
	fmt.Stringer

	// Letter returns the one-letter block marker: F, M, or C.
	Letter() string

	// FullName returns the qualified block name.
	FullName() string

	// Complexity returns the cyclomatic complexity score of the block.
	Complexity() int

	// Line returns the 1-based source line of the block definition.
	Line() uint

	// Col returns the 1-based source column of the block definition.
	Col() uint
}

// Function represents one function or method definition. Values are created
// during traversal and never mutated afterward.
type Function struct {
	name       string
	className  string
	clojures   []Function
	line       uint
	col        uint
	complexity int
	isMethod   bool
}

// NewFunction creates a Function record. The complexity already includes the
// base unit and the contribution of every nested clojure.
func NewFunction(
	name string, line, col uint, isMethod bool, className string,
	clojures []Function, complexity int,
) Function {
	return Function{
		name:       name,
		line:       line,
		col:        col,
		isMethod:   isMethod,
		className:  className,
		clojures:   clojures,
		complexity: complexity,
	}
}

// Name returns the bare function name.
func (f Function) Name() string { return f.name }

// Line returns the 1-based source line of the definition.
func (f Function) Line() uint { return f.line }

// Col returns the 1-based source column of the definition.
func (f Function) Col() uint { return f.col }

// IsMethod reports whether the function is a method of a class.
func (f Function) IsMethod() bool { return f.isMethod }

// ClassName returns the enclosing class name, or empty for plain functions.
func (f Function) ClassName() string { return f.className }

// Clojures returns the functions defined lexically inside this function's
// body, in definition order.
func (f Function) Clojures() []Function { return f.clojures }

// Complexity returns the cyclomatic complexity of the function.
func (f Function) Complexity() int { return f.complexity }

// Letter returns M for methods and F for plain functions.
func (f Function) Letter() string {
	if f.isMethod {
		return "M"
	}

	return "F"
}

// FullName returns "Class.name" for methods and the bare name otherwise.
func (f Function) FullName() string {
	if f.isMethod && f.className != "" {
		return f.className + "." + f.name
	}

	return f.name
}

func (f Function) String() string {
	return fmt.Sprintf("%s %d:%d %s - %d", f.Letter(), f.line, f.col, f.FullName(), f.complexity)
}

// Class represents one class definition. Values are created during traversal
// and never mutated afterward.
type Class struct {
	name           string
	methods        []Function
	line           uint
	col            uint
	realComplexity int
}

// NewClass creates a Class record. The real complexity is the class-body base
// unit plus the per-method contributions.
func NewClass(name string, line, col uint, methods []Function, realComplexity int) Class {
	return Class{
		name:           name,
		line:           line,
		col:            col,
		methods:        methods,
		realComplexity: realComplexity,
	}
}

// Name returns the class name.
func (c Class) Name() string { return c.name }

// Line returns the 1-based source line of the definition.
func (c Class) Line() uint { return c.line }

// Col returns the 1-based source column of the definition.
func (c Class) Col() uint { return c.col }

// Methods returns the methods owned by the class, in definition order.
func (c Class) Methods() []Function { return c.methods }

// RealComplexity returns the raw class complexity: the class-body base unit
// plus the sum of the per-method contributions.
func (c Class) RealComplexity() int { return c.realComplexity }

// Complexity returns the presented class complexity: the average method
// contribution plus one, or the real complexity when the class has no methods.
func (c Class) Complexity() int {
	if len(c.methods) == 0 {
		return c.realComplexity
	}

	return c.realComplexity/len(c.methods) + 1
}

// Letter returns C.
func (c Class) Letter() string { return "C" }

// FullName returns the class name. It exists for symmetry with Function.
func (c Class) FullName() string { return c.name }

func (c Class) String() string {
	return fmt.Sprintf("%s %d:%d %s - %d", c.Letter(), c.line, c.col, c.name, c.Complexity())
}
