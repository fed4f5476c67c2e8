package passes

import "github.com/yacobolo/cssmod/internal/stylesheet"

// ReduceTransforms rewrites transform functions into their shortest equivalent,
// for example translate3d(0,0,5px) to translateZ(5px) and scale(2,2) to scale(2).
func ReduceTransforms() Pass {
	return declPass(NameReduceTransforms, func(decl *stylesheet.Node) {
		if stylesheet.UnprefixedName(decl.Name) != "transform" {
			return
		}
		decl.Value = stylesheet.RewriteFunctions(decl.Value, reduceTransform)
	})
}

func reduceTransform(name, args string) (string, bool) {
	a := stylesheet.Args(args)
	switch {
	case name == "translate" && len(a) == 2:
		if isZero(a[1]) {
			return "translate(" + a[0] + ")", true
		}
		if isZero(a[0]) {
			return "translateY(" + a[1] + ")", true
		}
	case name == "translate3d" && len(a) == 3:
		if isZero(a[0]) && isZero(a[1]) {
			return "translateZ(" + a[2] + ")", true
		}
	case name == "scale" && len(a) == 2:
		switch {
		case a[0] == a[1]:
			return "scale(" + a[0] + ")", true
		case a[1] == "1":
			return "scaleX(" + a[0] + ")", true
		case a[0] == "1":
			return "scaleY(" + a[1] + ")", true
		}
	case name == "scale3d" && len(a) == 3:
		if a[2] == "1" {
			if a[0] == a[1] {
				return "scale(" + a[0] + ")", true
			}
			return "scale(" + a[0] + "," + a[1] + ")", true
		}
	case name == "rotatez" && len(a) == 1:
		return "rotate(" + a[0] + ")", true
	case name == "rotate3d" && len(a) == 4:
		switch {
		case a[0] == "0" && a[1] == "0" && a[2] == "1":
			return "rotate(" + a[3] + ")", true
		case a[0] == "1" && a[1] == "0" && a[2] == "0":
			return "rotateX(" + a[3] + ")", true
		case a[0] == "0" && a[1] == "1" && a[2] == "0":
			return "rotateY(" + a[3] + ")", true
		}
	}
	return "", false
}
