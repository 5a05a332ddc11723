package playground

import (
	"reflect"
)

type fieldInfo struct {
	name  string
	index []int
}

// typeInfo is the cached metadata of a struct type.
type typeInfo struct {
	fields []fieldInfo
	groups map[string]map[string]string
}

func (e *Engine) typeInfo(t reflect.Type, target any) *typeInfo {
	if cached, ok := e.types.Load(t); ok {
		return cached.(*typeInfo)
	}

	info := &typeInfo{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		info.fields = append(info.fields, fieldInfo{name: jsonName(sf), index: sf.Index})
	}
	if gr, ok := target.(GroupRules); ok {
		info.groups = gr.GroupRules()
	} else if gr, ok := reflect.New(t).Interface().(GroupRules); ok {
		info.groups = gr.GroupRules()
	}

	actual, _ := e.types.LoadOrStore(t, info)
	return actual.(*typeInfo)
}
