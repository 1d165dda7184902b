package query

// FlatRow una fila (padre, hijo) previa al reagrupamiento. HasChild=false representa un padre
// sin hijos (todas las columnas del hijo en NULL).
type FlatRow[K comparable, P, C any] struct {
	ParentKey K
	Parent    P
	ChildKey  K
	Child     C
	HasChild  bool
}

// GroupedResult un padre con sus hijos en orden de primera aparición. Children nunca es nil.
type GroupedResult[K comparable, P, C any] struct {
	Key      K
	Parent   P
	Children []C
}

// groupAcc acumulador por padre: hijos en orden y conjunto de identidades ya agregadas.
type groupAcc[K comparable, P, C any] struct {
	key      K
	parent   P
	children []C
	seen     map[K]struct{}
}

// orderedGroups mapa clave -> acumulador que conserva el orden de inserción.
type orderedGroups[K comparable, P, C any] struct {
	index map[K]int
	accs  []*groupAcc[K, P, C]
}

func (g *orderedGroups[K, P, C]) get(key K, parent P) *groupAcc[K, P, C] {
	if i, ok := g.index[key]; ok {
		return g.accs[i]
	}
	acc := &groupAcc[K, P, C]{key: key, parent: parent, children: []C{}, seen: make(map[K]struct{})}
	g.index[key] = len(g.accs)
	g.accs = append(g.accs, acc)
	return acc
}

// Group reagrupa filas planas en padres únicos con listas de hijos, en orden de primera aparición.
// Los campos del padre se toman de su primera fila. Un hijo ya visto para el mismo padre
// (artefacto del join) se descarta; una fila sin hijo solo registra al padre.
func Group[K comparable, P, C any](rows []FlatRow[K, P, C]) []GroupedResult[K, P, C] {
	groups := orderedGroups[K, P, C]{index: make(map[K]int)}
	for _, r := range rows {
		acc := groups.get(r.ParentKey, r.Parent)
		if !r.HasChild {
			continue
		}
		if _, dup := acc.seen[r.ChildKey]; dup {
			continue
		}
		acc.seen[r.ChildKey] = struct{}{}
		acc.children = append(acc.children, r.Child)
	}
	out := make([]GroupedResult[K, P, C], len(groups.accs))
	for i, acc := range groups.accs {
		out[i] = GroupedResult[K, P, C]{Key: acc.key, Parent: acc.parent, Children: acc.children}
	}
	return out
}

// Flatten es la inversa de Group: una fila por hijo y una fila sin hijo por cada padre vacío.
func Flatten[K comparable, P, C any](groups []GroupedResult[K, P, C], childKey func(C) K) []FlatRow[K, P, C] {
	var out []FlatRow[K, P, C]
	for _, g := range groups {
		if len(g.Children) == 0 {
			out = append(out, FlatRow[K, P, C]{ParentKey: g.Key, Parent: g.Parent})
			continue
		}
		for _, c := range g.Children {
			out = append(out, FlatRow[K, P, C]{
				ParentKey: g.Key,
				Parent:    g.Parent,
				ChildKey:  childKey(c),
				Child:     c,
				HasChild:  true,
			})
		}
	}
	return out
}
