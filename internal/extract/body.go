package extract

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// delegation is one resolved call into the delegation layer.
type delegation struct {
	direct  bool
	handler string
	method  string
	errVar  string
	guarded bool
}

// target tracks what a local variable holds after `h := reg.Handler("x")`
// or `b := reg.Backend()`.
type target struct {
	direct  bool
	handler string
}

// extractBody walks the top level of a tool body and fills in the shape
// facts. The convention keeps guards, delegation and error checks at the top
// statement level, so a deep traversal is only needed for prefix
// consistency.
func extractBody(body *ast.BlockStmt, regName string, def *domain.ToolDefinition) {
	paramSet := make(map[string]bool, len(def.Parameters))
	for _, p := range def.Parameters {
		paramSet[p.Name] = true
	}

	var (
		delegations []*delegation
		targets     = map[string]target{}
		errBlocks   []*ast.BlockStmt
		delegSeen   bool
	)

	for _, stmt := range body.List {
		switch s := stmt.(type) {
		case *ast.IfStmt:
			if isNilCheck(s.Cond, regName) || isTargetNilCheck(s.Cond, targets) {
				errBlocks = append(errBlocks, s.Body)
				if !delegSeen && returnsPrefixed(s.Body) && conditionMentions(s.Cond, regName) {
					def.Body.HasInitGuard = true
				}
				continue
			}
			if errVar, ok := isErrCheck(s.Cond); ok {
				errBlocks = append(errBlocks, s.Body)
				for _, d := range delegations {
					if d.errVar == errVar {
						d.guarded = returnsPrefixed(s.Body)
					}
				}
				continue
			}
			if name, ok := isParamGuard(s.Cond, paramSet); ok {
				errBlocks = append(errBlocks, s.Body)
				if !delegSeen && returnsPrefixed(s.Body) {
					def.GuardedParams[name] = true
				}
			}
		case *ast.AssignStmt:
			if t, name, ok := resolveTargetAssign(s, regName); ok {
				targets[name] = t
				continue
			}
			if d, ok := resolveDelegation(s, regName, targets); ok {
				delegations = append(delegations, d)
				delegSeen = true
			}
		}
	}

	def.Delegates = len(delegations) > 0
	if def.Delegates {
		first := delegations[0]
		if first.direct {
			def.Mode = domain.ModeDirect
		} else {
			def.Mode = domain.ModeDelegated
			def.Handler = first.handler
		}
		def.Method = first.method
	}

	boundary := true
	for _, d := range delegations {
		if !d.guarded {
			boundary = false
		}
	}
	def.Body.HasFailureBoundary = boundary

	def.Body.ErrorPrefixConsistent = prefixConsistent(body, errBlocks)
}

// resolveTargetAssign matches `h := reg.Handler("track")` and
// `b := reg.Backend()`.
func resolveTargetAssign(s *ast.AssignStmt, regName string) (target, string, bool) {
	if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
		return target{}, "", false
	}
	lhs, ok := s.Lhs[0].(*ast.Ident)
	if !ok {
		return target{}, "", false
	}
	t, ok := resolveTargetExpr(s.Rhs[0], regName)
	if !ok {
		return target{}, "", false
	}
	return t, lhs.Name, true
}

// resolveTargetExpr matches `reg.Handler("track")` and `reg.Backend()`.
func resolveTargetExpr(e ast.Expr, regName string) (target, bool) {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return target{}, false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return target{}, false
	}
	recv, ok := sel.X.(*ast.Ident)
	if !ok || recv.Name != regName {
		return target{}, false
	}
	switch sel.Sel.Name {
	case "Backend":
		return target{direct: true}, true
	case "Handler":
		if len(call.Args) == 1 {
			if name, ok := stringLit(call.Args[0]); ok {
				return target{handler: name}, true
			}
		}
	}
	return target{}, false
}

// resolveDelegation matches `result, err := h.Call(ctx, "method", args...)`
// where h is a previously resolved target, or the inlined form calling
// reg.Handler(...)/reg.Backend() directly.
func resolveDelegation(s *ast.AssignStmt, regName string, targets map[string]target) (*delegation, bool) {
	if len(s.Lhs) != 2 || len(s.Rhs) != 1 {
		return nil, false
	}
	call, ok := s.Rhs[0].(*ast.CallExpr)
	if !ok {
		return nil, false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Call" || len(call.Args) < 2 {
		return nil, false
	}

	var t target
	switch recv := sel.X.(type) {
	case *ast.Ident:
		t, ok = targets[recv.Name]
		if !ok {
			return nil, false
		}
	default:
		t, ok = resolveTargetExpr(sel.X, regName)
		if !ok {
			return nil, false
		}
	}

	method, ok := stringLit(call.Args[1])
	if !ok {
		return nil, false
	}
	d := &delegation{direct: t.direct, handler: t.handler, method: method}
	if errIdent, ok := s.Lhs[1].(*ast.Ident); ok {
		d.errVar = errIdent.Name
	}
	return d, true
}

// isNilCheck matches `name == nil`, also inside `a == nil || b == nil`.
func isNilCheck(cond ast.Expr, name string) bool {
	switch c := cond.(type) {
	case *ast.BinaryExpr:
		if c.Op == token.LOR {
			return isNilCheck(c.X, name) || isNilCheck(c.Y, name)
		}
		if c.Op != token.EQL {
			return false
		}
		x, xok := c.X.(*ast.Ident)
		y, yok := c.Y.(*ast.Ident)
		return xok && yok && ((x.Name == name && y.Name == "nil") || (y.Name == name && x.Name == "nil"))
	}
	return false
}

func isTargetNilCheck(cond ast.Expr, targets map[string]target) bool {
	for name := range targets {
		if isNilCheck(cond, name) {
			return true
		}
	}
	return false
}

// isErrCheck matches `err != nil`.
func isErrCheck(cond ast.Expr) (string, bool) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || bin.Op != token.NEQ {
		return "", false
	}
	x, xok := bin.X.(*ast.Ident)
	y, yok := bin.Y.(*ast.Ident)
	if xok && yok && y.Name == "nil" {
		return x.Name, true
	}
	return "", false
}

// isParamGuard reports a condition that mentions exactly one declared
// parameter and nothing registry- or error-shaped: a validation guard.
func isParamGuard(cond ast.Expr, params map[string]bool) (string, bool) {
	mentioned := map[string]bool{}
	foreign := false
	ast.Inspect(cond, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok {
			switch {
			case params[ident.Name]:
				mentioned[ident.Name] = true
			case ident.Name == "err" || ident.Name == "nil":
				foreign = true
			}
		}
		return true
	})
	if foreign || len(mentioned) != 1 {
		return "", false
	}
	for name := range mentioned {
		return name, true
	}
	return "", false
}

func conditionMentions(cond ast.Expr, name string) bool {
	found := false
	ast.Inspect(cond, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok && ident.Name == name {
			found = true
		}
		return true
	})
	return found
}

// returnsPrefixed reports whether the block returns a value carrying the
// canonical error prefix.
func returnsPrefixed(block *ast.BlockStmt) bool {
	for _, stmt := range block.List {
		if ret, ok := stmt.(*ast.ReturnStmt); ok && len(ret.Results) == 1 {
			return isPrefixedExpr(ret.Results[0])
		}
	}
	return false
}

// isPrefixedExpr recognizes the accepted error-return forms: a literal
// starting with the prefix, a concatenation whose left side does, a
// fmt.Sprintf whose format does, or the shared NotInitialized constant.
func isPrefixedExpr(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.BasicLit:
		s, ok := stringLit(v)
		return ok && strings.HasPrefix(s, domain.ErrorPrefix)
	case *ast.BinaryExpr:
		return v.Op == token.ADD && isPrefixedExpr(v.X)
	case *ast.CallExpr:
		if sel, ok := v.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Sprintf" && len(v.Args) > 0 {
			return isPrefixedExpr(v.Args[0])
		}
	case *ast.Ident:
		return v.Name == "NotInitialized"
	case *ast.SelectorExpr:
		return v.Sel.Name == "NotInitialized"
	}
	return false
}

// prefixConsistent checks two things: every return inside a failure block
// carries the prefix, and no string-literal return anywhere starts with a
// near-miss of the prefix (e.g. "Error - ", "error:").
func prefixConsistent(body *ast.BlockStmt, errBlocks []*ast.BlockStmt) bool {
	for _, block := range errBlocks {
		for _, stmt := range block.List {
			ret, ok := stmt.(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				continue
			}
			if !isPrefixedExpr(ret.Results[0]) {
				return false
			}
		}
	}

	consistent := true
	ast.Inspect(body, func(n ast.Node) bool {
		ret, ok := n.(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			return true
		}
		if lit, ok := ret.Results[0].(*ast.BasicLit); ok {
			if s, ok := stringLit(lit); ok {
				lower := strings.ToLower(s)
				if strings.HasPrefix(lower, "error") && !strings.HasPrefix(s, domain.ErrorPrefix) {
					consistent = false
				}
			}
		}
		return true
	})
	return consistent
}

func stringLit(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}
