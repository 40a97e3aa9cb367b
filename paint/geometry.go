package paint

// LocalToAbsolute walks cmd's ancestor chain from its parent up to the
// root, mapping rect through each VisualEffect's Map, matching
// compositing.py's local_to_absolute.
func LocalToAbsolute(cmd Command, rect Rect) Rect {
	for _, ancestor := range ancestorChain(cmd) {
		if ve, ok := ancestor.(VisualEffect); ok {
			rect = ve.Map(rect)
		}
	}
	return rect
}

// AbsoluteToLocal walks cmd's ancestor chain from the root down, applying
// each VisualEffect's Unmap in the same top-down order, matching
// compositing.py's absolute_to_local (which reverses the collected parent
// chain before applying unmap, i.e. root-to-leaf order, same as here).
func AbsoluteToLocal(cmd Command, rect Rect) Rect {
	chain := ancestorChain(cmd)
	for i := len(chain) - 1; i >= 0; i-- {
		if ve, ok := chain[i].(VisualEffect); ok {
			rect = ve.Unmap(rect)
		}
	}
	return rect
}

func ancestorChain(cmd Command) []Command {
	var chain []Command
	for p := cmd.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}

// AbsoluteBounds returns a command's rect mapped into absolute (root)
// coordinates, the per-item step of compositing.py's CompositedLayer.
// absolute_bounds / composited_bounds.
func AbsoluteBounds(cmd Command) Rect {
	return LocalToAbsolute(cmd, cmd.Bounds())
}
