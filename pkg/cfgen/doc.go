// Package cfgen 根据嵌套的配置文档自动生成命令行参数，并把解析结果合并为类型化的配置树。
//
// 文档中的每个叶子对应一个 flag，默认值取自文档，命令行的值优先：
//
//	# config.yaml
//	PATHS:
//	  model_save_path: runs/
//	  epochs: 10
//	TRAINING:
//	  use_cuda: true
//	  layers: [64, 32]
//
//	gen, err := cfgen.New("config.yaml")
//	tree, err := gen.Parse(ctx, os.Args[1:]) // --epochs 25 --no-use-cuda --layers 128 64
//	epochs, err := tree.GetInt("PATHS", "epochs")
//	err = gen.Dump("runs/config.yaml")
//
// # Flag 规则
//
//   - 名称为叶子 key，下划线转为连字符：model_save_path → --model-save-path
//   - 不同分组下同名的叶子改用完整路径：train.lr → --train-lr，eval.lr → --eval-lr
//   - bool 同时生成 --name 与 --no-name，二者互斥
//   - 列表接受一个或多个值：--layers 128 64，也可以重复 --layers=128 --layers=64
//   - 空列表无法推断元素类型，[New] 返回 [schema.InferenceError]
//
// # 状态
//
// [New] 之后为 [StateSchemaBuilt]；[Generator.Parse] 成功后为 [StateParsed]。
// [Generator.BuildConfig] 与 [Generator.Dump] 需要 [StateParsed]，否则返回 [ErrNotParsed]。
// [Generator.AppendArgument] 只修改文档，[Generator.Recompile] 重建 schema 并回到 [StateSchemaBuilt]。
package cfgen
