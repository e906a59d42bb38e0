// Package schema 从嵌套文档推断命令行 flag 描述。
//
// 每个叶子对应一个 [Entry]，类型在构建时一次性确定 (见 [Type])，
// 之后的树构建与回写只依赖类型标签，不再检查原始值。
//
// # Flag 命名
//
// 默认使用叶子 key，下划线替换为连字符：
//   - model_save_path → --model-save-path
//
// 不同层级出现同名叶子时，这些叶子改用完整路径：
//   - train.lr, eval.lr → --train-lr, --eval-lr
//
// 覆盖表 ([Overrides]) 以完整路径 (如 PATHS.epochs) 为 key，因此不会出现歧义。
package schema
