// Package docmap 提供保持 key 顺序的嵌套映射，作为配置文档在内存中的表示。
//
// 文档加载器 (见 docio 包) 产出 [Map]，schema 推断、树构建与回写都基于它完成。
package docmap
