package lox

import "testing"

func resolveSource(t *testing.T, src string) ([]Stmt, Resolution, []error) {
	t.Helper()
	stmts := mustParse(t, src)
	resolution, errs := Resolve(stmts)
	return stmts, resolution, errs
}

func Test_Resolver_Global_Unresolved_NoMapEntry(t *testing.T) {
	stmts, resolution, errs := resolveSource(t, "var a = 1; a;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expr := stmts[1].(*ExpressionStmt).Expression.(*Variable)
	if _, ok := resolution[expr]; ok {
		t.Fatalf("expected global reference to have no resolution entry")
	}
}

func Test_Resolver_Local_Depth_Zero(t *testing.T) {
	stmts, resolution, errs := resolveSource(t, "{ var a = 1; a; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	block := stmts[0].(*BlockStmt)
	expr := block.Statements[1].(*ExpressionStmt).Expression.(*Variable)
	depth, ok := resolution[expr]
	if !ok || depth != 0 {
		t.Fatalf("want depth 0 for same-scope read, got %v ok=%v", depth, ok)
	}
}

func Test_Resolver_Local_Depth_Nested(t *testing.T) {
	stmts, resolution, errs := resolveSource(t, "{ var a = 1; { a; } }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := stmts[0].(*BlockStmt)
	inner := outer.Statements[1].(*BlockStmt)
	expr := inner.Statements[0].(*ExpressionStmt).Expression.(*Variable)
	depth, ok := resolution[expr]
	if !ok || depth != 1 {
		t.Fatalf("want depth 1 for a read one block up, got %v ok=%v", depth, ok)
	}
}

func Test_Resolver_SelfReferentialInitializer_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "{ var a = a; }")
	if len(errs) == 0 {
		t.Fatalf("expected 'Can't read local variable in its own initializer' error")
	}
}

func Test_Resolver_DuplicateLocal_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "{ var a = 1; var a = 2; }")
	if len(errs) == 0 {
		t.Fatalf("expected 'Already a variable with this name in this scope' error")
	}
}

func Test_Resolver_DuplicateGlobal_IsNotError(t *testing.T) {
	_, _, errs := resolveSource(t, "var a = 1; var a = 2;")
	if len(errs) != 0 {
		t.Fatalf("top-level redeclaration should be allowed, got: %v", errs)
	}
}

func Test_Resolver_ReturnOutsideFunction_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "return 1;")
	if len(errs) == 0 {
		t.Fatalf("expected 'Can't return from top-level code' error")
	}
}

func Test_Resolver_ReturnValueFromInitializer_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "class A { init() { return 1; } }")
	if len(errs) == 0 {
		t.Fatalf("expected 'Can't return a value from an initializer' error")
	}
}

func Test_Resolver_BareReturnFromInitializer_IsAllowed(t *testing.T) {
	_, _, errs := resolveSource(t, "class A { init() { return; } }")
	if len(errs) != 0 {
		t.Fatalf("bare return from init should be allowed, got: %v", errs)
	}
}

func Test_Resolver_ThisOutsideClass_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "fun f() { return this; }")
	if len(errs) == 0 {
		t.Fatalf("expected 'Can't use 'this' outside of a class' error")
	}
}

func Test_Resolver_SuperWithoutSuperclass_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "class A { m() { super.m(); } }")
	if len(errs) == 0 {
		t.Fatalf("expected 'Can't use 'super' in a class with no superclass' error")
	}
}

func Test_Resolver_SelfInheritance_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "class A < A {}")
	if len(errs) == 0 {
		t.Fatalf("expected 'A class can't inherit from itself' error")
	}
}

func Test_Resolver_FunctionParams_ShadowEnclosingScope(t *testing.T) {
	src := "{ var a = 1; fun f(a) { return a; } }"
	_, _, errs := resolveSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("parameter shadowing a block-local should be fine, got: %v", errs)
	}
}

func Test_Resolver_IsDeterministic(t *testing.T) {
	src := "{ var a = 1; { a; } } fun f() { return this; }"
	stmts1 := mustParse(t, src)
	res1, _ := Resolve(stmts1)
	stmts2 := mustParse(t, src)
	res2, _ := Resolve(stmts2)
	if len(res1) != len(res2) {
		t.Fatalf("resolution sizes differ across runs: %d vs %d", len(res1), len(res2))
	}
}
