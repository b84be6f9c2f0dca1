package pl0

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST rooted at n to w.
func FprintJSON(w io.Writer, n Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(toJSON(n))
}

func toJSON(n Node) interface{} {
	if n == nil {
		return nil
	}

	m := map[string]interface{}{
		"pos": n.Location().String(),
	}

	switch n := n.(type) {
	case *Program:
		m["type"] = "Program"
		consts := make([]interface{}, len(n.Consts))
		for i, d := range n.Consts {
			consts[i] = toJSON(d)
		}
		vars := make([]interface{}, len(n.Vars))
		for i, d := range n.Vars {
			vars[i] = toJSON(d)
		}
		m["consts"] = consts
		m["vars"] = vars
		m["body"] = toJSON(n.Body)
	case *ConstDecl:
		m["type"] = "ConstDecl"
		m["name"] = n.Name
		m["value"] = n.Value
	case *VarDecl:
		m["type"] = "VarDecl"
		m["name"] = n.Name
	case *AssignStmt:
		m["type"] = "AssignStmt"
		m["name"] = n.Name
		m["expr"] = toJSON(n.Expr)
	case *BeginStmt:
		m["type"] = "BeginStmt"
		stmts := make([]interface{}, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = toJSON(s)
		}
		m["stmts"] = stmts
	case *IfStmt:
		m["type"] = "IfStmt"
		m["cond"] = toJSON(n.Cond)
		m["then"] = toJSON(n.Then)
		m["else"] = toJSON(n.Else)
	case *WhileStmt:
		m["type"] = "WhileStmt"
		m["cond"] = toJSON(n.Cond)
		m["body"] = toJSON(n.Body)
	case *ReadStmt:
		m["type"] = "ReadStmt"
		m["name"] = n.Name
	case *WriteStmt:
		m["type"] = "WriteStmt"
		m["expr"] = toJSON(n.Expr)
	case *SkipStmt:
		m["type"] = "SkipStmt"
	case *OddCond:
		m["type"] = "OddCond"
		m["expr"] = toJSON(n.Expr)
	case *BinaryCond:
		m["type"] = "BinaryCond"
		m["op"] = string(n.Operation)
		m["left"] = toJSON(n.Op1)
		m["right"] = toJSON(n.Op2)
	case *Identifier:
		m["type"] = "Identifier"
		m["name"] = n.Name
	case *NumberExpr:
		m["type"] = "Number"
		m["value"] = n.Value
	case *BinaryExpr:
		m["type"] = "BinaryExpr"
		m["op"] = string(n.Operation)
		m["left"] = toJSON(n.Op1)
		m["right"] = toJSON(n.Op2)
	}

	return m
}
