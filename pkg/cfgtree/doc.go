// Package cfgtree 提供只读的类型化配置树，以及从文档和覆盖表构建它的过程。
//
// 树由 [Group] 与 [Leaf] 组成，结构与源文档一致，子节点保持文档顺序。
// 按路径读取：
//
//	epochs, err := tree.GetInt("PATHS", "epochs")
//
// 或解码到结构体 (见 [Group.Decode])。
package cfgtree
